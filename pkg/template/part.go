package template

import "github.com/arthur-debert/progtmpl/pkg/style"

// Kind identifies the variant of a Part.
type Kind uint8

const (
	KindLiteral Kind = iota
	KindPlaceholder
	KindNewLine
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindPlaceholder:
		return "placeholder"
	case KindNewLine:
		return "newline"
	default:
		return "unknown"
	}
}

// Part is one element of a compiled template: a Literal, a Placeholder or
// a NewLine.
type Part interface {
	Kind() Kind
	isPart()
}

// Alignment positions a value inside a placeholder cell.
type Alignment uint8

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// String returns left, center or right.
func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// Symbol returns the alignment character used in template source.
func (a Alignment) Symbol() byte {
	switch a {
	case AlignCenter:
		return '^'
	case AlignRight:
		return '>'
	default:
		return '<'
	}
}

func alignmentFor(c byte) (Alignment, bool) {
	switch c {
	case '<':
		return AlignLeft, true
	case '^':
		return AlignCenter, true
	case '>':
		return AlignRight, true
	}
	return AlignLeft, false
}

// Literal is text emitted verbatim.
type Literal struct {
	Text string
}

// Placeholder is a substitution site.
type Placeholder struct {
	// Key names the substituted value and is never empty.
	Key   string
	Align Alignment
	// Width is the cell width; nil means no padding.
	Width *int
	// Truncate cuts values longer than Width instead of letting them overflow.
	Truncate bool
	Style    *style.Style
	AltStyle *style.Style
}

// NewLine marks a line break.
type NewLine struct{}

func (Literal) Kind() Kind { return KindLiteral }
func (Placeholder) Kind() Kind { return KindPlaceholder }
func (NewLine) Kind() Kind { return KindNewLine }

func (Literal) isPart() {}
func (Placeholder) isPart() {}
func (NewLine) isPart() {}

// HasWidth reports whether the placeholder has a cell width.
func (p Placeholder) HasWidth() bool {
	return p.Width != nil
}

// CellWidth returns the cell width, or 0 when none is set.
func (p Placeholder) CellWidth() int {
	if p.Width == nil {
		return 0
	}
	return *p.Width
}
