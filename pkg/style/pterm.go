package style

import "github.com/pterm/pterm"

var ptermForeground = map[Color]pterm.Color{
	Black:   pterm.FgBlack,
	Red:     pterm.FgRed,
	Green:   pterm.FgGreen,
	Yellow:  pterm.FgYellow,
	Blue:    pterm.FgBlue,
	Magenta: pterm.FgMagenta,
	Cyan:    pterm.FgCyan,
	White:   pterm.FgWhite,
}

var ptermBackground = map[Color]pterm.Color{
	Black:   pterm.BgBlack,
	Red:     pterm.BgRed,
	Green:   pterm.BgGreen,
	Yellow:  pterm.BgYellow,
	Blue:    pterm.BgBlue,
	Magenta: pterm.BgMagenta,
	Cyan:    pterm.BgCyan,
	White:   pterm.BgWhite,
}

var ptermAttributes = map[Attribute]pterm.Color{
	Bold:       pterm.Bold,
	Dim:        pterm.Fuzzy,
	Italic:     pterm.Italic,
	Underlined: pterm.Underscore,
	Blink:      pterm.Blink,
	Reverse:    pterm.Reverse,
	Hidden:     pterm.Concealed,
}

// Pterm converts s into a pterm style for table and preview output.
// pterm styles only carry the sixteen base colors, so palette colors are
// dropped. Bright named colors use the light variants.
func (s Style) Pterm() *pterm.Style {
	var colors []pterm.Color
	if fg, ok := ptermForeground[s.Fg]; ok {
		if s.FgBright {
			fg += 60
		}
		colors = append(colors, fg)
	}
	if bg, ok := ptermBackground[s.Bg]; ok {
		if s.BgBright {
			bg += 60
		}
		colors = append(colors, bg)
	}
	for _, a := range s.Attrs.List() {
		colors = append(colors, ptermAttributes[a])
	}
	return pterm.NewStyle(colors...)
}
