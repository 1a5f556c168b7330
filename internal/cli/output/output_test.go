package output

import (
	"bytes"
	"encoding/json"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func newTestRenderer(mode OutputMode, isTTY bool) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return NewRendererWithTTY(out, errOut, isTTY, mode), out, errOut
}

func TestMode(t *testing.T) {
	tests := []struct {
		in   string
		want OutputMode
	}{
		{"", ModeAuto},
		{"auto", ModeAuto},
		{"text", ModeText},
		{"markdown", ModeMarkdown},
		{"json", ModeJSON},
		{"xml", ModeAuto},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Mode(tt.in), tt.in)
	}
}

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		name  string
		mode  OutputMode
		isTTY bool
		want  OutputMode
	}{
		{"auto tty", ModeAuto, true, ModeText},
		{"auto piped", ModeAuto, false, ModeMarkdown},
		{"explicit text piped", ModeText, false, ModeText},
		{"explicit json tty", ModeJSON, true, ModeJSON},
		{"markdown tty", ModeMarkdown, true, ModeMarkdown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _ := newTestRenderer(tt.mode, tt.isTTY)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestNewRenderer_BufferIsNotTTY(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, &bytes.Buffer{}, ModeAuto)
	assert.False(t, r.IsTTY())
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())
}

func TestHeader(t *testing.T) {
	r, out, _ := newTestRenderer(ModeMarkdown, false)
	r.Header(2, "Units")
	assert.Equal(t, "## Units\n\n", out.String())

	r, out, _ = newTestRenderer(ModeText, false)
	r.Header(1, "Units")
	assert.Contains(t, out.String(), "Units")
	assert.False(t, ansiPattern.MatchString(out.String()), "no colours off a TTY")
}

func TestText_TTYUsesColours(t *testing.T) {
	r, out, _ := newTestRenderer(ModeText, true)
	r.Header(1, "Units")
	assert.True(t, ansiPattern.MatchString(out.String()))
}

func TestSetTheme(t *testing.T) {
	r, _, _ := newTestRenderer(ModeText, true)
	assert.Equal(t, ThemeLight, r.Theme())

	r.SetTheme(ThemeDark)
	assert.Equal(t, ThemeDark, r.Theme())
	assert.NotNil(t, r.Styles())
}

func TestMessages(t *testing.T) {
	r, out, errOut := newTestRenderer(ModeMarkdown, false)
	r.Success("history cleared")
	r.Warning("nothing to export")
	r.Error("boom")
	r.Muted("quiet")

	assert.Equal(t, "history cleared\nquiet\n", out.String())
	assert.Contains(t, errOut.String(), "Warning: nothing to export")
	assert.Contains(t, errOut.String(), "Error: boom")
}

func TestTable(t *testing.T) {
	t.Run("markdown", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeMarkdown, false)
		r.Table([]string{"Unit", "Factor"}, [][]string{{"km", "1000"}, {"a|b", "1"}})

		s := out.String()
		assert.Contains(t, s, "| Unit | Factor |")
		assert.Contains(t, s, "| km | 1000 |")
		assert.Contains(t, s, `a\|b`)
	})

	t.Run("text", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeText, false)
		r.Table([]string{"Unit"}, [][]string{{"km"}})

		s := out.String()
		assert.Contains(t, s, "km")
		assert.Contains(t, s, "┌")
	})
}

func TestConversion(t *testing.T) {
	c := ConversionOutput{Value: 1, From: "km", To: "m", Quantity: "longueur", Result: 1000}

	t.Run("json", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeJSON, false)
		require.NoError(t, r.Conversion(c))

		var got ConversionOutput
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		assert.Equal(t, c, got)
	})

	t.Run("markdown", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeMarkdown, false)
		require.NoError(t, r.Conversion(c))
		assert.Equal(t, "1 km = **1000** m\n", out.String())
	})

	t.Run("text", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeText, false)
		require.NoError(t, r.Conversion(c))
		assert.Equal(t, "1 km = 1000 m  (Longueur)\n", out.String())
	})
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "# Title", FormatHeader(1, "Title"))
	assert.Equal(t, "### Title", FormatHeader(3, "Title"))
	assert.Equal(t, "# Title", FormatHeader(0, "Title"))
	assert.Equal(t, "- **Theme**: dark", FormatKeyValue("Theme", "dark"))

	assert.Equal(t, "1609.344", FormatNumber(1609.344))
	assert.Equal(t, "-40", FormatNumber(-40))
	assert.Equal(t, "1e+21", FormatNumber(1e21))

	assert.Equal(t, "Longueur", QuantityLabel("longueur"))
	assert.Equal(t, "Intensite Electrique", QuantityLabel("intensite_electrique"))
	assert.Equal(t, "Quantite Matiere", QuantityLabel("quantite_matiere"))
}
