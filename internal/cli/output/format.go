package output

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FormatHeader formats a markdown header of the given level.
func FormatHeader(level int, text string) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("#", level) + " " + text
}

// FormatKeyValue formats a markdown list item with a bold key.
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("- **%s**: %s", key, value)
}

// FormatNumber formats f with the fewest digits that read back as f.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// QuantityLabel turns a quantity identifier into a display label:
// "intensite_electrique" becomes "Intensite Electrique".
func QuantityLabel(name string) string {
	return cases.Title(language.French).String(strings.ReplaceAll(name, "_", " "))
}
