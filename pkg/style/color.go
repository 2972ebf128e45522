package style

import "strconv"

// Color is one of the eight named ANSI colors or an index into the 256
// color palette. The zero value means no color is set.
type Color uint16

// Named colors. The numeric values are private to this package; use
// Index to get a palette index.
const (
	ColorNone Color = iota
	Black
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
)

const paletteFlag Color = 0x100

// colorNames maps the dotted-token spelling of each named color.
var colorNames = map[string]Color{
	"black":   Black,
	"red":     Red,
	"green":   Green,
	"yellow":  Yellow,
	"blue":    Blue,
	"magenta": Magenta,
	"cyan":    Cyan,
	"white":   White,
}

var colorOrder = [...]string{"", "black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

// Color256 returns the palette color n.
func Color256(n uint8) Color {
	return paletteFlag | Color(n)
}

// IsSet reports whether c holds a color.
func (c Color) IsSet() bool {
	return c != ColorNone
}

// IsNamed reports whether c is one of the eight named colors.
func (c Color) IsNamed() bool {
	return c >= Black && c <= White
}

// Index returns the palette index of a Color256 value.
func (c Color) Index() (uint8, bool) {
	if c&paletteFlag == 0 {
		return 0, false
	}
	return uint8(c &^ paletteFlag), true
}

// ANSI returns the base ANSI color number (0-7) of a named color.
func (c Color) ANSI() (int, bool) {
	if !c.IsNamed() {
		return 0, false
	}
	return int(c - Black), true
}

// Name returns the dotted-token spelling of c: the color name for named
// colors, the decimal index for palette colors and "" when unset.
func (c Color) Name() string {
	if n, ok := c.Index(); ok {
		return strconv.Itoa(int(n))
	}
	if c.IsNamed() {
		return colorOrder[c]
	}
	return ""
}

// String implements fmt.Stringer.
func (c Color) String() string {
	if !c.IsSet() {
		return "none"
	}
	return c.Name()
}

// ParseColor parses a color name or a decimal palette index.
func ParseColor(name string) (Color, bool) {
	if c, ok := colorNames[name]; ok {
		return c, true
	}
	n, ok := parseIndex(name)
	if !ok {
		return ColorNone, false
	}
	return Color256(n), true
}

// parseIndex parses an unsigned decimal palette index. Signs, other bases
// and values above 255 are rejected.
func parseIndex(s string) (uint8, bool) {
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, false
	}
	return uint8(n), true
}
