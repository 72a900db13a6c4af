package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFrontmatter(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		wantTemplate string
		wantYAML     bool
		wantVars     map[string]string
		wantErr      string
	}{
		{
			name:         "no frontmatter",
			content:      "Hello {{name}}\n",
			wantTemplate: "Hello {{name}}\n",
			wantVars:     map[string]string{},
		},
		{
			name:         "with frontmatter",
			content:      "---\nvariables:\n  name: Alice,Bob\n---\nHello {{name}}\n",
			wantTemplate: "Hello {{name}}\n",
			wantYAML:     true,
			wantVars:     map[string]string{"name": "Alice,Bob"},
		},
		{
			name:         "crlf line endings",
			content:      "---\r\ndelimiter: \";\"\r\n---\r\n{{a}}",
			wantTemplate: "{{a}}",
			wantYAML:     true,
			wantVars:     map[string]string{},
		},
		{
			name:         "body whitespace preserved",
			content:      "---\nfallback: space\n---\n\n  {{a}}  \n",
			wantTemplate: "\n  {{a}}  \n",
			wantYAML:     true,
			wantVars:     map[string]string{},
		},
		{
			name:         "dashes later in the file are body",
			content:      "{{a}}\n---\nnot yaml\n---\n",
			wantTemplate: "{{a}}\n---\nnot yaml\n---\n",
			wantVars:     map[string]string{},
		},
		{
			name:    "template key rejected",
			content: "---\ntemplate: x\n---\nbody",
			wantErr: "must not set template",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ExtractFrontmatter(tt.content)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTemplate, doc.Template)
			assert.Equal(t, tt.wantYAML, doc.HasYAML)
			require.NotNil(t, doc.Job)
			assertAssignments(t, tt.wantVars, doc.Job, ",")
		})
	}
}

func TestLoadTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.tpl")
	require.NoError(t, os.WriteFile(path, []byte("---\nunknown: 1\n---\n{{a}}"), 0o600))

	_, err := LoadTemplate(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}
