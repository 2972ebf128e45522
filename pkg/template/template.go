package template

import (
	"slices"
	"strconv"
	"strings"

	"github.com/arthur-debert/progtmpl/pkg/errors"
	"github.com/arthur-debert/progtmpl/pkg/logging"
)

// Template is a compiled template. It is immutable and safe for concurrent
// use.
type Template struct {
	parts []Part
}

// Parse compiles src without resource limits. Malformed input degrades to
// literal text, so Parse never fails.
func Parse(src string) *Template {
	return &Template{parts: newScanner(src, Limits{}).run()}
}

// Compile compiles src within limits. Exceeding a limit returns a
// CAPACITY_EXCEEDED error. Any other panic signals a scanner defect and is
// not recovered.
func Compile(src string, limits Limits) (t *Template, err error) {
	logger := logging.GetLogger("template")

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if tmplErr, ok := r.(*errors.TemplateError); ok && tmplErr.Code == errors.ErrCapacity {
			logger.Debug().Err(tmplErr).Int("length", len(src)).Msg("Template exceeds limits")
			t, err = nil, tmplErr
			return
		}
		panic(r)
	}()

	parts := newScanner(src, limits).run()
	logger.Trace().Int("length", len(src)).Int("parts", len(parts)).Msg("Template compiled")
	return &Template{parts: parts}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(src string, limits Limits) *Template {
	t, err := Compile(src, limits)
	if err != nil {
		panic(err)
	}
	return t
}

// New builds a template from parts, for callers that assemble templates in
// code. Placeholders with an empty key are rejected.
func New(parts ...Part) (*Template, error) {
	for i, p := range parts {
		if ph, ok := p.(Placeholder); ok && ph.Key == "" {
			return nil, errors.Newf(errors.ErrTemplateInvalid, "placeholder at index %d has an empty key", i).
				WithDetail("index", i)
		}
	}
	return &Template{parts: slices.Clone(parts)}, nil
}

// Parts returns a copy of the parts in emission order.
func (t *Template) Parts() []Part {
	return slices.Clone(t.parts)
}

// Len returns the number of parts.
func (t *Template) Len() int {
	return len(t.parts)
}

// Part returns the part at index i.
func (t *Template) Part(i int) (Part, bool) {
	if i < 0 || i >= len(t.parts) {
		return nil, false
	}
	return t.parts[i], true
}

// Placeholders returns the placeholder parts in order.
func (t *Template) Placeholders() []Placeholder {
	var out []Placeholder
	for _, p := range t.parts {
		if ph, ok := p.(Placeholder); ok {
			out = append(out, ph)
		}
	}
	return out
}

// Keys returns the distinct placeholder keys in order of first appearance.
func (t *Template) Keys() []string {
	seen := make(map[string]bool)
	var keys []string
	for _, ph := range t.Placeholders() {
		if seen[ph.Key] {
			continue
		}
		seen[ph.Key] = true
		keys = append(keys, ph.Key)
	}
	return keys
}

// String returns template source that compiles back to the same parts.
// Adjacent literals come back as a single literal.
func (t *Template) String() string {
	var b strings.Builder
	for _, p := range t.parts {
		switch p := p.(type) {
		case Literal:
			writeEscaped(&b, p.Text)
		case NewLine:
			b.WriteByte('\n')
		case Placeholder:
			writePlaceholder(&b, p)
		}
	}
	return b.String()
}

func writeEscaped(b *strings.Builder, text string) {
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '{' || c == '}' {
			b.WriteByte(c)
		}
		b.WriteByte(c)
	}
}

func writePlaceholder(b *strings.Builder, p Placeholder) {
	b.WriteByte('{')
	b.WriteString(p.Key)

	if p.Align != AlignLeft || p.Width != nil || p.Truncate || p.Style != nil || p.AltStyle != nil {
		b.WriteByte(':')
		if p.Align != AlignLeft {
			b.WriteByte(p.Align.Symbol())
		}
		if p.Width != nil {
			b.WriteString(strconv.Itoa(*p.Width))
		}
		if p.Truncate {
			b.WriteByte('!')
		}
		if p.Style != nil {
			b.WriteByte('.')
			b.WriteString(p.Style.String())
		}
		if p.AltStyle != nil {
			b.WriteByte('/')
			b.WriteString(p.AltStyle.String())
		}
	}

	b.WriteByte('}')
}
