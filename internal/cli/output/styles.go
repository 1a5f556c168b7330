package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Themes.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Styles holds the lipgloss styles used by text output.
type Styles struct {
	Header1  lipgloss.Style
	Header2  lipgloss.Style
	Bold     lipgloss.Style
	Muted    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Info     lipgloss.Style
	Result   lipgloss.Style
	Unit     lipgloss.Style
	Quantity lipgloss.Style
}

// palette is the set of colours for one theme.
type palette struct {
	accent, muted, success, warning, errc, info, result lipgloss.Color
}

var palettes = map[string]palette{
	ThemeLight: {
		accent:  lipgloss.Color("#1D4ED8"),
		muted:   lipgloss.Color("#6B7280"),
		success: lipgloss.Color("#15803D"),
		warning: lipgloss.Color("#B45309"),
		errc:    lipgloss.Color("#B91C1C"),
		info:    lipgloss.Color("#0E7490"),
		result:  lipgloss.Color("#7C3AED"),
	},
	ThemeDark: {
		accent:  lipgloss.Color("#93C5FD"),
		muted:   lipgloss.Color("#9CA3AF"),
		success: lipgloss.Color("#86EFAC"),
		warning: lipgloss.Color("#FCD34D"),
		errc:    lipgloss.Color("#FCA5A5"),
		info:    lipgloss.Color("#67E8F9"),
		result:  lipgloss.Color("#C4B5FD"),
	},
}

// NewStyles builds the styles of theme bound to lr. Unknown themes fall back
// to the light theme.
func NewStyles(lr *lipgloss.Renderer, theme string) *Styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[ThemeLight]
	}
	return &Styles{
		Header1:  lr.NewStyle().Bold(true).Underline(true).Foreground(p.accent),
		Header2:  lr.NewStyle().Bold(true).Foreground(p.accent),
		Bold:     lr.NewStyle().Bold(true),
		Muted:    lr.NewStyle().Foreground(p.muted),
		Success:  lr.NewStyle().Foreground(p.success),
		Warning:  lr.NewStyle().Foreground(p.warning),
		Error:    lr.NewStyle().Bold(true).Foreground(p.errc),
		Info:     lr.NewStyle().Foreground(p.info),
		Result:   lr.NewStyle().Bold(true).Foreground(p.result),
		Unit:     lr.NewStyle().Foreground(p.info),
		Quantity: lr.NewStyle().Italic(true).Foreground(p.muted),
	}
}
