package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tplgen/internal/cli/output"
	"github.com/leapstack-labs/tplgen/pkg/expand"
)

// NewVarsCommand creates the vars command.
func NewVarsCommand() *cobra.Command {
	opts := &SourceOptions{}

	cmd := &cobra.Command{
		Use:   "vars",
		Short: "List the variables of a template",
		Long: `List the unique {{name}} placeholders of a template in order of first
appearance, with how often each occurs and where it first appears.`,
		Example: `  tplgen vars -T "Hello {{name}}, your id is {{id}}"
  tplgen vars -f update.sql.tpl -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.TemplateSet = cmd.Flags().Changed("template")
			return runVars(cmd, opts)
		},
	}

	addSourceFlags(cmd, opts)
	return cmd
}

func runVars(cmd *cobra.Command, opts *SourceOptions) error {
	c := NewCommandContext(cmd)

	job, err := resolveJob(cmd, opts)
	if err != nil {
		return err
	}

	result := describeVars(job.Template)
	c.Logger.Debug("scanned template", "variables", result.Count)

	if c.Renderer.EffectiveMode() != output.ModeJSON {
		for _, v := range result.Variables {
			if !v.Identifier {
				c.Renderer.Warning(fmt.Sprintf("%s is not a plain identifier; it is used exactly as written", expand.Token(v.Name)))
			}
		}
	}
	return c.Renderer.Vars(result)
}

// describeVars summarizes the placeholders of template in first-seen order.
func describeVars(template string) output.VarsOutput {
	index := make(map[string]int)
	vars := []output.VarInfo{}
	for _, p := range expand.Scan(template) {
		if i, ok := index[p.Name]; ok {
			vars[i].Occurrences++
			continue
		}
		index[p.Name] = len(vars)
		vars = append(vars, output.VarInfo{
			Name:        p.Name,
			Occurrences: 1,
			Line:        p.Pos.Line,
			Column:      p.Pos.Column,
			Identifier:  expand.IsIdentifier(p.Name),
		})
	}
	return output.VarsOutput{Variables: vars, Count: len(vars)}
}
