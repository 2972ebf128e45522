package style

import (
	"strings"

	"github.com/arthur-debert/progtmpl/pkg/errors"
)

const (
	tokenSeparator   = "."
	backgroundPrefix = "on_"
	tokenBright      = "bright"
	tokenOnBright    = "on_bright"
)

// Decode folds a dotted style string into a Style. Empty and unrecognized
// tokens are skipped.
func Decode(dotted string) Style {
	var s Style
	for _, token := range strings.Split(dotted, tokenSeparator) {
		if token == "" {
			continue
		}
		s, _ = s.Apply(token)
	}
	return s
}

// DecodeStrict works like Decode but fails on the first unrecognized token.
func DecodeStrict(dotted string) (Style, error) {
	var s Style
	for _, token := range strings.Split(dotted, tokenSeparator) {
		if token == "" {
			continue
		}
		next, ok := s.Apply(token)
		if !ok {
			return Style{}, errors.Newf(errors.ErrInvalidStyle, "unknown style token %q", token).
				WithDetail("style", dotted).
				WithDetail("token", token)
		}
		s = next
	}
	return s, nil
}

// Apply applies a single token to s. The boolean reports whether the token
// was recognized; on false s is returned unchanged.
func (s Style) Apply(token string) (Style, bool) {
	switch token {
	case tokenBright:
		return s.Bright(), true
	case tokenOnBright:
		return s.OnBright(), true
	}

	if c, ok := colorNames[token]; ok {
		return s.Foreground(c), true
	}
	if a, ok := ParseAttribute(token); ok {
		return s.Attr(a), true
	}

	if rest, ok := strings.CutPrefix(token, backgroundPrefix); ok {
		if c, ok := colorNames[rest]; ok {
			return s.Background(c), true
		}
		if n, ok := parseIndex(rest); ok {
			return s.OnColor256(n), true
		}
		return s, false
	}

	if n, ok := parseIndex(token); ok {
		return s.Color256(n), true
	}
	return s, false
}
