package style

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
)

func TestPterm(t *testing.T) {
	tests := []struct {
		name  string
		style Style
		want  pterm.Style
	}{
		{
			name:  "empty",
			style: Style{},
			want:  pterm.Style{},
		},
		{
			name:  "foreground and background",
			style: New().Red().OnBlue(),
			want:  pterm.Style{pterm.FgRed, pterm.BgBlue},
		},
		{
			name:  "bright variants",
			style: New().Black().Bright().OnWhite().OnBright(),
			want:  pterm.Style{pterm.FgDarkGray, pterm.BgLightWhite},
		},
		{
			name:  "attributes in order",
			style: New().Hidden().Bold().Dim(),
			want:  pterm.Style{pterm.Bold, pterm.Fuzzy, pterm.Concealed},
		},
		{
			name:  "blink and reverse",
			style: New().Reverse().Blink().Underlined(),
			want:  pterm.Style{pterm.Underscore, pterm.Blink, pterm.Reverse},
		},
		{
			name:  "palette colors dropped",
			style: New().Color256(100).OnColor256(3).Italic(),
			want:  pterm.Style{pterm.Italic},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, *tt.style.Pterm())
		})
	}
}

func TestLipglossColor(t *testing.T) {
	c, ok := LipglossColor(Red, false)
	assert.True(t, ok)
	assert.Equal(t, lipgloss.Color("1"), c)

	c, ok = LipglossColor(Red, true)
	assert.True(t, ok)
	assert.Equal(t, lipgloss.Color("9"), c)

	c, ok = LipglossColor(Color256(123), true)
	assert.True(t, ok)
	assert.Equal(t, lipgloss.Color("123"), c)

	_, ok = LipglossColor(ColorNone, false)
	assert.False(t, ok)
}

func TestLipgloss(t *testing.T) {
	var buf bytes.Buffer
	renderer := lipgloss.NewRenderer(&buf)

	t.Run("plain profile renders text unchanged", func(t *testing.T) {
		renderer.SetColorProfile(termenv.Ascii)
		s := Decode("red.on_blue.bold").Lipgloss(renderer.NewStyle())
		assert.Equal(t, "hi", s.Render("hi"))
	})

	t.Run("color profile emits escapes", func(t *testing.T) {
		renderer.SetColorProfile(termenv.ANSI256)
		s := Decode("red.bold").Lipgloss(renderer.NewStyle())
		out := s.Render("hi")
		assert.Contains(t, out, "hi")
		assert.Contains(t, out, "\x1b[")
	})

	t.Run("fields carried over", func(t *testing.T) {
		s := Decode("green.bright.on_7.dim.underlined.reverse").Lipgloss(renderer.NewStyle())
		assert.Equal(t, lipgloss.Color("10"), s.GetForeground())
		assert.Equal(t, lipgloss.Color("7"), s.GetBackground())
		assert.True(t, s.GetFaint())
		assert.True(t, s.GetUnderline())
		assert.True(t, s.GetReverse())
		assert.False(t, s.GetBold())
	})
}
