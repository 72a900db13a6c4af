package output

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Rows renders generated rows in the effective mode.
func (r *Renderer) Rows(result GenerateOutput) error {
	switch r.EffectiveMode() {
	case ModeJSON:
		if result.Rows == nil {
			result.Rows = []string{}
		}
		return r.JSON(result)
	case ModeMarkdown:
		r.Println(FormatHeader(1, fmt.Sprintf("Generated Output (%d items)", result.Count)))
		r.Println("")
		r.Println(FormatCodeBlock("", strings.Join(result.Rows, "\n")))
		if result.Continued && len(result.Counts) > 0 {
			// Short lists were padded with the fallback
			r.Println("")
			r.Println(FormatHeader(2, "Value counts"))
			r.Println("")
			for _, name := range slices.Sorted(maps.Keys(result.Counts)) {
				r.Println(FormatKeyValue(name, result.Counts[name]))
			}
		}
	case ModeTable:
		r.renderRowsTable(result.Rows)
	default:
		// Text mode: rows only, so the output can be piped or pasted as-is
		for _, row := range result.Rows {
			r.Println(row)
		}
	}
	return nil
}

func (r *Renderer) renderRowsTable(rows []string) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Output"})
	for i, row := range rows {
		t.AppendRow(table.Row{i + 1, row})
	}
	t.Render()
	r.Printf("(%d rows)\n", len(rows))
}

// Vars renders the variables of a template in the effective mode.
func (r *Renderer) Vars(result VarsOutput) error {
	switch r.EffectiveMode() {
	case ModeJSON:
		if result.Variables == nil {
			result.Variables = []VarInfo{}
		}
		return r.JSON(result)
	case ModeMarkdown:
		r.Println(FormatHeader(1, fmt.Sprintf("Variables (%d)", result.Count)))
		r.Println("")
		if result.Count == 0 {
			r.Println("_No placeholders found._")
			return nil
		}
		r.Println("| Name | Occurrences | First at |")
		r.Println("|------|-------------|----------|")
		for _, v := range result.Variables {
			r.Printf("| `%s` | %d | %d:%d |\n", v.Name, v.Occurrences, v.Line, v.Column)
		}
	case ModeTable:
		t := table.NewWriter()
		t.SetOutputMirror(r.out)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Name", "Occurrences", "First at"})
		for _, v := range result.Variables {
			t.AppendRow(table.Row{v.Name, v.Occurrences, fmt.Sprintf("%d:%d", v.Line, v.Column)})
		}
		t.Render()
	default:
		if result.Count == 0 {
			r.Muted("No placeholders found.")
			return nil
		}
		r.Header(fmt.Sprintf("Variables (%d)", result.Count))
		for _, v := range result.Variables {
			r.Printf("  %s  %s\n",
				r.styles.Name.Render(strconv.Quote(v.Name)),
				r.styles.Muted.Render(fmt.Sprintf("×%d  first at %d:%d", v.Occurrences, v.Line, v.Column)))
		}
	}
	return nil
}
