// Package config provides configuration management for the tplgen CLI.
//
// Configuration is layered: built-in defaults, then tplgen.yaml, then
// TPLGEN_* environment variables, then explicitly set command-line flags.
package config

import "time"

// Config holds all CLI configuration options.
type Config struct {
	Delimiter     string        `koanf:"delimiter"`
	Fallback      string        `koanf:"fallback"`
	Locale        string        `koanf:"locale"`
	OutputFormat  string        `koanf:"output"`
	Verbose       bool          `koanf:"verbose"`
	NoColor       bool          `koanf:"no_color"`
	Copy          bool          `koanf:"copy"`
	WatchDebounce time.Duration `koanf:"watch_debounce"`
}

// Default configuration values.
const (
	DefaultDelimiter     = ","
	DefaultFallback      = "last"
	DefaultLocale        = "en"
	DefaultOutput        = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultWatchDebounce = 200 * time.Millisecond
)

// ConfigFileNames are the file names searched for, in order.
var ConfigFileNames = []string{"tplgen.yaml", "tplgen.yml"}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		Delimiter:     DefaultDelimiter,
		Fallback:      DefaultFallback,
		Locale:        DefaultLocale,
		OutputFormat:  DefaultOutput,
		WatchDebounce: DefaultWatchDebounce,
	}
}
