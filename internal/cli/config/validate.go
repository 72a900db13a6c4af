package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/tplgen/internal/notify"
	"github.com/leapstack-labs/tplgen/pkg/core"
)

// validOutputs lists the accepted output formats.
var validOutputs = []string{"auto", "text", "markdown", "json", "table"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Delimiter) == "" {
		return fmt.Errorf("delimiter must not be empty\nHint: use %q for line breaks", `\n`)
	}
	if _, ok := core.ParseFallbackPolicy(c.Fallback); !ok {
		return fmt.Errorf("unknown fallback %q (expected %q or %q)", c.Fallback, core.FallbackLast, core.FallbackSpace)
	}
	if !slices.Contains(validOutputs, c.OutputFormat) {
		return fmt.Errorf("unknown output format %q (expected one of: %s)", c.OutputFormat, strings.Join(validOutputs, ", "))
	}
	if c.Locale != "" {
		if _, ok := notify.MatchLocale(c.Locale); !ok {
			return fmt.Errorf("unsupported locale %q (supported: %s)", c.Locale, strings.Join(notify.SupportedLocales(), ", "))
		}
	}
	if c.WatchDebounce < 0 {
		return fmt.Errorf("watch_debounce must not be negative, got %s", c.WatchDebounce)
	}
	return nil
}

// FallbackPolicy returns the parsed fallback policy.
func (c *Config) FallbackPolicy() core.FallbackPolicy {
	p, _ := core.ParseFallbackPolicy(c.Fallback)
	return p
}

// ValidOutputs returns the accepted output formats, for flag completion.
func ValidOutputs() []string {
	return append([]string(nil), validOutputs...)
}
