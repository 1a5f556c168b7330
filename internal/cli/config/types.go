// Package config provides configuration management for the unitconv CLI.
//
// Configuration is layered with koanf. Precedence, highest first:
// flags > UNITCONV_* environment variables > config file > defaults.
package config

import (
	sharedcfg "github.com/leapstack-labs/unitconv/internal/config"
	"github.com/leapstack-labs/unitconv/pkg/units"
)

// Config holds all CLI configuration options.
type Config struct {
	HistoryPath     string               `koanf:"history_path" yaml:"history_path"`
	HistoryLimit    int                  `koanf:"history_limit" yaml:"history_limit"`
	HistoryEnabled  bool                 `koanf:"history_enabled" yaml:"history_enabled"`
	OutputFormat    string               `koanf:"output" yaml:"output"`
	Theme           string               `koanf:"theme" yaml:"theme"`
	Verbose         bool                 `koanf:"verbose" yaml:"verbose"`
	Rounding        units.RoundingPolicy `koanf:"rounding" yaml:"rounding"`
	Precision       int                  `koanf:"precision" yaml:"precision"`
	DefaultQuantity string               `koanf:"default_quantity" yaml:"default_quantity"`
	Server          ServerConfig         `koanf:"server" yaml:"server"`

	// ProjectRoot is the directory relative paths are resolved against.
	ProjectRoot string `koanf:"-" yaml:"-"`
}

// ServerConfig holds configuration for the HTTP API.
type ServerConfig struct {
	Port   int  `koanf:"port" yaml:"port"`
	Record bool `koanf:"record" yaml:"record"` // Record API conversions in history
}

// Default configuration values - uses shared defaults from internal/config
const (
	DefaultHistoryPath  = sharedcfg.DefaultHistoryPath
	DefaultHistoryLimit = sharedcfg.DefaultHistoryLimit
	DefaultOutput       = sharedcfg.DefaultOutput
	DefaultTheme        = sharedcfg.DefaultTheme
	DefaultQuantity     = sharedcfg.DefaultQuantity
	DefaultServerPort   = sharedcfg.DefaultServerPort
	DefaultPrecision    = sharedcfg.DefaultPrecision
)

// EnvPrefix is the prefix of environment variables read by the loader.
const EnvPrefix = "UNITCONV_"

// ConfigFileNames are the file names searched for, in order.
var ConfigFileNames = []string{"unitconv.yaml", "unitconv.yml"}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		HistoryPath:     DefaultHistoryPath,
		HistoryLimit:    DefaultHistoryLimit,
		HistoryEnabled:  true,
		OutputFormat:    DefaultOutput,
		Theme:           DefaultTheme,
		Rounding:        units.RoundAffine,
		Precision:       DefaultPrecision,
		DefaultQuantity: DefaultQuantity,
		Server: ServerConfig{
			Port: DefaultServerPort,
		},
	}
}

// Converter builds a converter over the built-in registry honoring the
// configured rounding policy and precision.
func (c *Config) Converter() *units.Converter {
	return units.NewConverter(units.Default(),
		units.WithRounding(c.Rounding),
		units.WithPrecision(c.Precision),
	)
}
