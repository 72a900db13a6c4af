package output

import (
	"fmt"
	"strings"
)

// FormatHeader returns a Markdown header of the given level.
func FormatHeader(level int, text string) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("#", level) + " " + text
}

// FormatCodeBlock wraps content in a fenced code block.
func FormatCodeBlock(lang, content string) string {
	fence := "```"
	for strings.Contains(content, fence) {
		fence += "`"
	}
	return fence + lang + "\n" + strings.TrimSuffix(content, "\n") + "\n" + fence
}

// FormatKeyValue returns a Markdown bullet "- **key**: value".
func FormatKeyValue(key string, value any) string {
	return fmt.Sprintf("- **%s**: %v", key, value)
}
