// Package style describes terminal styles and decodes them from dotted
// strings such as "red.on_blue.bold".
package style

import "strings"

// ForceMode overrides color detection for a single style.
type ForceMode uint8

const (
	ForceUnset ForceMode = iota
	ForceOn
	ForceOff
)

// Style is a comparable terminal style descriptor.
//
// Force and ForStderr are never set by Decode. They exist for callers that
// build styles in code and are honored by the renderer.
type Style struct {
	Fg        Color
	Bg        Color
	FgBright  bool
	BgBright  bool
	Attrs     Attributes
	Force     ForceMode
	ForStderr bool
}

// New returns an empty style.
func New() Style {
	return Style{}
}

// IsZero reports whether s carries no styling at all.
func (s Style) IsZero() bool {
	return s == Style{}
}

// Foreground sets the foreground color.
func (s Style) Foreground(c Color) Style {
	s.Fg = c
	return s
}

// Background sets the background color.
func (s Style) Background(c Color) Style {
	s.Bg = c
	return s
}

// Attr adds a text attribute.
func (s Style) Attr(a Attribute) Style {
	s.Attrs = s.Attrs.Insert(a)
	return s
}

// Bright marks the foreground color as bright.
func (s Style) Bright() Style {
	s.FgBright = true
	return s
}

// OnBright marks the background color as bright.
func (s Style) OnBright() Style {
	s.BgBright = true
	return s
}

// Forced sets the force mode.
func (s Style) Forced(mode ForceMode) Style {
	s.Force = mode
	return s
}

// ToStderr targets the style at standard error.
func (s Style) ToStderr() Style {
	s.ForStderr = true
	return s
}

func (s Style) Black() Style { return s.Foreground(Black) }
func (s Style) Red() Style { return s.Foreground(Red) }
func (s Style) Green() Style { return s.Foreground(Green) }
func (s Style) Yellow() Style { return s.Foreground(Yellow) }
func (s Style) Blue() Style { return s.Foreground(Blue) }
func (s Style) Magenta() Style { return s.Foreground(Magenta) }
func (s Style) Cyan() Style { return s.Foreground(Cyan) }
func (s Style) White() Style { return s.Foreground(White) }
func (s Style) Color256(n uint8) Style { return s.Foreground(Color256(n)) }
func (s Style) OnBlack() Style { return s.Background(Black) }
func (s Style) OnRed() Style { return s.Background(Red) }
func (s Style) OnGreen() Style { return s.Background(Green) }
func (s Style) OnYellow() Style { return s.Background(Yellow) }
func (s Style) OnBlue() Style { return s.Background(Blue) }
func (s Style) OnMagenta() Style { return s.Background(Magenta) }
func (s Style) OnCyan() Style { return s.Background(Cyan) }
func (s Style) OnWhite() Style { return s.Background(White) }
func (s Style) OnColor256(n uint8) Style { return s.Background(Color256(n)) }
func (s Style) Bold() Style { return s.Attr(Bold) }
func (s Style) Dim() Style { return s.Attr(Dim) }
func (s Style) Italic() Style { return s.Attr(Italic) }
func (s Style) Underlined() Style { return s.Attr(Underlined) }
func (s Style) Blink() Style { return s.Attr(Blink) }
func (s Style) Reverse() Style { return s.Attr(Reverse) }
func (s Style) Hidden() Style { return s.Attr(Hidden) }

// String returns the canonical dotted form of s. Decoding it yields s back,
// except for Force and ForStderr which have no dotted spelling.
func (s Style) String() string {
	var tokens []string
	if s.Fg.IsSet() {
		tokens = append(tokens, s.Fg.Name())
	}
	if s.FgBright {
		tokens = append(tokens, tokenBright)
	}
	if s.Bg.IsSet() {
		tokens = append(tokens, backgroundPrefix+s.Bg.Name())
	}
	if s.BgBright {
		tokens = append(tokens, tokenOnBright)
	}
	for _, a := range s.Attrs.List() {
		tokens = append(tokens, a.String())
	}
	return strings.Join(tokens, ".")
}

// MarshalText encodes s in its dotted form.
func (s Style) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes the dotted form strictly.
func (s *Style) UnmarshalText(text []byte) error {
	decoded, err := DecodeStrict(string(text))
	if err != nil {
		return err
	}
	*s = decoded
	return nil
}
