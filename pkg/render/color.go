package render

import (
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/progtmpl/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// ColorMode selects when styles are turned into escape sequences.
type ColorMode int

const (
	// ColorAuto colors output only when it goes to a color-capable terminal
	ColorAuto ColorMode = iota
	// ColorAlways colors output regardless of where it goes
	ColorAlways
	// ColorNever writes plain text
	ColorNever
)

// String returns the string representation of the mode
func (m ColorMode) String() string {
	switch m {
	case ColorAuto:
		return "auto"
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "unknown"
	}
}

// ParseColorMode parses a string into a ColorMode value
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return ColorAuto, nil
	case "always", "on", "force":
		return ColorAlways, nil
	case "never", "off", "none":
		return ColorNever, nil
	default:
		return ColorAuto, errors.Newf(errors.ErrInvalidInput, "unknown color mode: %s", s).
			WithDetail("value", s)
	}
}

// DetectProfile determines the color profile for w based on environment and
// terminal capabilities
func DetectProfile(w io.Writer) termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}

	f, ok := w.(*os.File)
	if !ok {
		return termenv.Ascii
	}

	// Check if we're being piped or redirected
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return termenv.Ascii
	}

	return termenv.NewOutput(f).EnvColorProfile()
}

// profileFor resolves the profile mode implies for w.
func profileFor(mode ColorMode, w io.Writer) termenv.Profile {
	switch mode {
	case ColorAlways:
		return atLeastANSI256(DetectProfile(w))
	case ColorNever:
		return termenv.Ascii
	default:
		return DetectProfile(w)
	}
}

// atLeastANSI256 upgrades p so palette colors survive. Lower profile values
// carry more colors.
func atLeastANSI256(p termenv.Profile) termenv.Profile {
	if p > termenv.ANSI256 {
		return termenv.ANSI256
	}
	return p
}
