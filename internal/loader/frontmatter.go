package loader

import (
	"fmt"
	"os"
	"regexp"
)

// TemplateDocument is a template file split into its frontmatter job and body.
type TemplateDocument struct {
	// Job holds delimiter, fallback and variables from the frontmatter; never nil.
	Job      *Job
	Template string
	HasYAML  bool
}

// frontmatterPattern matches a leading ---\n ... \n--- block and the line
// break that closes it.
var frontmatterPattern = regexp.MustCompile(`(?s)\A---[ \t]*\r?\n(.*?)\r?\n---[ \t]*(?:\r?\n|\z)`)

// ExtractFrontmatter splits content into an optional YAML header and the
// template body. The body is returned byte for byte; only the header block is
// removed.
func ExtractFrontmatter(content string) (*TemplateDocument, error) {
	doc := &TemplateDocument{
		Job:      &Job{Variables: map[string]Values{}},
		Template: content,
	}

	loc := frontmatterPattern.FindStringSubmatchIndex(content)
	if loc == nil {
		return doc, nil
	}

	doc.HasYAML = true
	header := content[loc[2]:loc[3]]
	doc.Template = content[loc[1]:]

	job, err := ParseJob([]byte(header))
	if err != nil {
		return nil, err
	}
	if job.Template != "" || job.TemplateFile != "" {
		return nil, &ParseError{Message: "frontmatter must not set template or template_file"}
	}
	doc.Job = job
	return doc, nil
}

// LoadTemplate reads a template file and its optional frontmatter.
func LoadTemplate(path string) (*TemplateDocument, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided CLI input
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	doc, err := ExtractFrontmatter(string(data))
	if err != nil {
		return nil, withFile(err, path)
	}
	doc.Job.Path = path
	return doc, nil
}
