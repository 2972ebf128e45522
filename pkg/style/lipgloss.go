package style

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// LipglossColor converts a color to its lipgloss equivalent. Named colors
// map to ANSI 0-7, or 8-15 when bright is set. Palette colors map to their
// index. The boolean is false for an unset color.
func LipglossColor(c Color, bright bool) (lipgloss.Color, bool) {
	if n, ok := c.Index(); ok {
		return lipgloss.Color(strconv.Itoa(int(n))), true
	}
	base, ok := c.ANSI()
	if !ok {
		return "", false
	}
	if bright {
		base += 8
	}
	return lipgloss.Color(strconv.Itoa(base)), true
}

// Lipgloss layers s onto base, which is normally created from a
// lipgloss.Renderer so the right color profile applies. Hidden has no
// lipgloss counterpart and is left to the caller.
func (s Style) Lipgloss(base lipgloss.Style) lipgloss.Style {
	out := base
	if fg, ok := LipglossColor(s.Fg, s.FgBright); ok {
		out = out.Foreground(fg)
	}
	if bg, ok := LipglossColor(s.Bg, s.BgBright); ok {
		out = out.Background(bg)
	}
	for _, a := range s.Attrs.List() {
		switch a {
		case Bold:
			out = out.Bold(true)
		case Dim:
			out = out.Faint(true)
		case Italic:
			out = out.Italic(true)
		case Underlined:
			out = out.Underline(true)
		case Blink:
			out = out.Blink(true)
		case Reverse:
			out = out.Reverse(true)
		}
	}
	return out
}
