// Package render writes compiled templates to the terminal, laying each
// value out in its cell and coloring it through lipgloss.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/progtmpl/pkg/errors"
	"github.com/arthur-debert/progtmpl/pkg/logging"
	"github.com/arthur-debert/progtmpl/pkg/style"
	"github.com/arthur-debert/progtmpl/pkg/template"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
)

// Values maps placeholder keys to their text.
type Values map[string]string

// Option configures a Renderer.
type Option func(*Renderer)

// WithOutput sets the writer used by Print and for color detection.
func WithOutput(w io.Writer) Option {
	return func(r *Renderer) { r.out = w }
}

// WithErrOutput sets the writer whose color profile applies to styles
// marked for stderr.
func WithErrOutput(w io.Writer) Option {
	return func(r *Renderer) { r.errOut = w }
}

// WithColorMode sets the color mode.
func WithColorMode(mode ColorMode) Option {
	return func(r *Renderer) { r.mode = mode }
}

// WithStrict makes a missing key an error instead of an empty value.
func WithStrict(strict bool) Option {
	return func(r *Renderer) { r.strict = strict }
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Renderer) { r.logger = logger }
}

// Renderer turns templates and values into text. It holds no per-call state
// and is safe for concurrent use.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   ColorMode
	strict bool
	logger zerolog.Logger

	stdout       *lipgloss.Renderer
	stderr       *lipgloss.Renderer
	stdoutForced *lipgloss.Renderer
	stderrForced *lipgloss.Renderer
}

// New creates a Renderer writing to stdout by default.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		out:    os.Stdout,
		errOut: os.Stderr,
		logger: logging.GetLogger("render"),
	}
	for _, opt := range opts {
		opt(r)
	}

	outProfile := profileFor(r.mode, r.out)
	errProfile := profileFor(r.mode, r.errOut)
	r.stdout = newLipglossRenderer(r.out, outProfile)
	r.stderr = newLipglossRenderer(r.errOut, errProfile)
	r.stdoutForced = newLipglossRenderer(r.out, atLeastANSI256(outProfile))
	r.stderrForced = newLipglossRenderer(r.errOut, atLeastANSI256(errProfile))

	r.logger.Debug().
		Str("mode", r.mode.String()).
		Str("profile", profileName(outProfile)).
		Bool("strict", r.strict).
		Msg("Renderer created")
	return r
}

func newLipglossRenderer(w io.Writer, profile termenv.Profile) *lipgloss.Renderer {
	lr := lipgloss.NewRenderer(w)
	lr.SetColorProfile(profile)
	return lr
}

// ColorProfile returns the profile used for stdout styles.
func (r *Renderer) ColorProfile() termenv.Profile {
	return r.stdout.ColorProfile()
}

// Render fills t with values using each placeholder's first style.
func (r *Renderer) Render(t *template.Template, values Values) (string, error) {
	return r.render(t, values, false)
}

// RenderAlt fills t using each placeholder's alternate style, falling back
// to the first style where none is given.
func (r *Renderer) RenderAlt(t *template.Template, values Values) (string, error) {
	return r.render(t, values, true)
}

// Print renders t and writes the result to the output.
func (r *Renderer) Print(t *template.Template, values Values, alt bool) error {
	text, err := r.render(t, values, alt)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(r.out, text); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to write rendered template")
	}
	return nil
}

func (r *Renderer) render(t *template.Template, values Values, alt bool) (string, error) {
	var b strings.Builder
	for _, p := range t.Parts() {
		switch p := p.(type) {
		case template.Literal:
			b.WriteString(p.Text)
		case template.NewLine:
			b.WriteByte('\n')
		case template.Placeholder:
			value, ok := values[p.Key]
			if !ok {
				if r.strict {
					return "", errors.Newf(errors.ErrMissingKey, "no value for key %q", p.Key).
						WithDetail("key", p.Key)
				}
				r.logger.Debug().Str("key", p.Key).Msg("Missing value, substituting empty string")
			}
			st := p.Style
			if alt && p.AltStyle != nil {
				st = p.AltStyle
			}
			b.WriteString(r.styled(Layout(value, p), st))
		}
	}
	return b.String(), nil
}

// Layout fits value into the placeholder's cell. Widths are display cells,
// so wide runes count twice.
func Layout(value string, p template.Placeholder) string {
	if p.Width == nil {
		return value
	}
	width := *p.Width

	w := runewidth.StringWidth(value)
	if w > width && p.Truncate {
		value = runewidth.Truncate(value, width, "")
		w = runewidth.StringWidth(value)
	}
	if w >= width {
		return value
	}

	pad := width - w
	switch p.Align {
	case template.AlignRight:
		return strings.Repeat(" ", pad) + value
	case template.AlignCenter:
		// extra space goes to the right
		left := pad / 2
		return strings.Repeat(" ", left) + value + strings.Repeat(" ", pad-left)
	default:
		return value + strings.Repeat(" ", pad)
	}
}

// styled applies st line by line, so multi-line values keep their shape.
func (r *Renderer) styled(text string, st *style.Style) string {
	if st == nil || st.IsZero() {
		return text
	}

	lines := strings.Split(text, "\n")
	if st.Attrs.Has(style.Hidden) {
		for i, line := range lines {
			lines[i] = strings.Repeat(" ", runewidth.StringWidth(line))
		}
	}

	lr := r.rendererFor(*st)
	if st.Force == style.ForceOff || lr.ColorProfile() == termenv.Ascii {
		return strings.Join(lines, "\n")
	}

	ls := st.Lipgloss(lr.NewStyle().TabWidth(lipgloss.NoTabConversion))
	for i, line := range lines {
		if line != "" {
			lines[i] = ls.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) rendererFor(st style.Style) *lipgloss.Renderer {
	forced := st.Force == style.ForceOn
	switch {
	case st.ForStderr && forced:
		return r.stderrForced
	case st.ForStderr:
		return r.stderr
	case forced:
		return r.stdoutForced
	default:
		return r.stdout
	}
}

// ParseValues reads key=value pairs. The first '=' separates key and value.
func ParseValues(pairs []string) (Values, error) {
	values := make(Values, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, "expected key=value, got %q", pair).
				WithDetail("argument", pair)
		}
		values[key] = value
	}
	return values, nil
}

func profileName(p termenv.Profile) string {
	switch p {
	case termenv.TrueColor:
		return "truecolor"
	case termenv.ANSI256:
		return "ansi256"
	case termenv.ANSI:
		return "ansi"
	case termenv.Ascii:
		return "ascii"
	default:
		return fmt.Sprintf("profile(%d)", p)
	}
}
