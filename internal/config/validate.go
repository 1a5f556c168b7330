package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/unitconv/pkg/units"
)

// ValidateOutput checks that format is a known output format.
func ValidateOutput(format string) error {
	if slices.Contains(OutputFormats, format) {
		return nil
	}
	return fmt.Errorf("invalid output format %q (available: %s)", format, strings.Join(OutputFormats, ", "))
}

// ValidateTheme checks that theme is a known theme.
func ValidateTheme(theme string) error {
	if slices.Contains(ThemeNames, theme) {
		return nil
	}
	return fmt.Errorf("invalid theme %q (available: %s)", theme, strings.Join(ThemeNames, ", "))
}

// ValidateQuantity checks that name is a quantity of the built-in registry.
func ValidateQuantity(name string) error {
	if _, err := units.Default().Lookup(name); err != nil {
		return fmt.Errorf("%w (available: %s)", err, strings.Join(units.Quantities(), ", "))
	}
	return nil
}

// ValidatePort checks that port is a usable TCP port number.
func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %d", port)
	}
	return nil
}

// ValidatePrecision checks that places is a sensible number of decimals.
func ValidatePrecision(places int) error {
	if places < 0 || places > 15 {
		return fmt.Errorf("invalid precision %d (must be between 0 and 15)", places)
	}
	return nil
}
