package style

import "strings"

// Attribute is a text attribute such as bold or underlined.
type Attribute uint8

const (
	Bold Attribute = iota
	Dim
	Italic
	Underlined
	Blink
	Reverse
	Hidden
)

var attributeNames = [...]string{"bold", "dim", "italic", "underlined", "blink", "reverse", "hidden"}

// AllAttributes lists every attribute in order.
var AllAttributes = []Attribute{Bold, Dim, Italic, Underlined, Blink, Reverse, Hidden}

// String returns the dotted-token spelling of a.
func (a Attribute) String() string {
	if int(a) < len(attributeNames) {
		return attributeNames[a]
	}
	return "unknown"
}

// ParseAttribute parses an attribute token.
func ParseAttribute(name string) (Attribute, bool) {
	for i, n := range attributeNames {
		if n == name {
			return Attribute(i), true
		}
	}
	return 0, false
}

// Attributes is a set of text attributes. Inserting an attribute that is
// already present leaves the set unchanged.
type Attributes uint8

// Insert returns the set with a added.
func (s Attributes) Insert(a Attribute) Attributes {
	return s | 1<<a
}

// Has reports whether a is in the set.
func (s Attributes) Has(a Attribute) bool {
	return s&(1<<a) != 0
}

// Len returns the number of attributes in the set.
func (s Attributes) Len() int {
	n := 0
	for _, a := range AllAttributes {
		if s.Has(a) {
			n++
		}
	}
	return n
}

// List returns the attributes in ascending order.
func (s Attributes) List() []Attribute {
	out := make([]Attribute, 0, s.Len())
	for _, a := range AllAttributes {
		if s.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

// String joins the attribute names with dots.
func (s Attributes) String() string {
	names := make([]string, 0, s.Len())
	for _, a := range s.List() {
		names = append(names, a.String())
	}
	return strings.Join(names, ".")
}
