package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles used for terminal output.
type Styles struct {
	Header  lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Success lipgloss.Style
	Name    lipgloss.Style
	Row     lipgloss.Style
}

// NewStyles creates styles bound to w. When colored is false every style
// renders plain text.
func NewStyles(w io.Writer, colored bool) *Styles {
	r := lipgloss.NewRenderer(w)
	if !colored {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Styles{
		Header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Bold:    r.NewStyle().Bold(true),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
		Error:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		Warning: r.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		Info:    r.NewStyle().Foreground(lipgloss.Color("14")),
		Success: r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		Name:    r.NewStyle().Foreground(lipgloss.Color("13")),
		Row:     r.NewStyle(),
	}
}
