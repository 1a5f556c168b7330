// Package config holds the configuration defaults and validation shared by the
// CLI and the HTTP server.
package config

import "github.com/leapstack-labs/unitconv/pkg/units"

// Default configuration values.
const (
	DefaultHistoryPath  = "data/history.db"
	DefaultHistoryLimit = 50
	DefaultOutput       = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultTheme        = ThemeLight
	DefaultQuantity     = units.Length
	DefaultServerPort   = 8080
	DefaultPrecision    = units.DefaultPrecision
)

// Themes.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Output formats accepted by the --output flag.
var OutputFormats = []string{"auto", "text", "markdown", "json"}

// ThemeNames lists the accepted themes.
var ThemeNames = []string{ThemeLight, ThemeDark}
