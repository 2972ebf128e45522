package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColor(t *testing.T) {
	assert.False(t, ColorNone.IsSet())
	assert.True(t, Black.IsSet())
	assert.True(t, Color256(0).IsSet())

	// palette entries never collide with named colors
	assert.NotEqual(t, Red, Color256(1))
	assert.NotEqual(t, Black, Color256(0))

	n, ok := Color256(200).Index()
	assert.True(t, ok)
	assert.Equal(t, uint8(200), n)

	_, ok = Blue.Index()
	assert.False(t, ok)

	base, ok := White.ANSI()
	assert.True(t, ok)
	assert.Equal(t, 7, base)

	_, ok = Color256(3).ANSI()
	assert.False(t, ok)
}

func TestColorNames(t *testing.T) {
	tests := []struct {
		color Color
		name  string
	}{
		{Black, "black"},
		{Red, "red"},
		{Green, "green"},
		{Yellow, "yellow"},
		{Blue, "blue"},
		{Magenta, "magenta"},
		{Cyan, "cyan"},
		{White, "white"},
		{Color256(9), "9"},
		{ColorNone, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.name, tt.color.Name())
		if tt.color.IsSet() {
			parsed, ok := ParseColor(tt.name)
			assert.True(t, ok, tt.name)
			assert.Equal(t, tt.color, parsed)
		}
	}

	assert.Equal(t, "none", ColorNone.String())

	_, ok := ParseColor("purple")
	assert.False(t, ok)
	_, ok = ParseColor("999")
	assert.False(t, ok)
}

func TestAttributes(t *testing.T) {
	var set Attributes
	set = set.Insert(Reverse).Insert(Bold).Insert(Reverse)

	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Has(Bold))
	assert.False(t, set.Has(Dim))
	assert.Equal(t, []Attribute{Bold, Reverse}, set.List())
	assert.Equal(t, "bold.reverse", set.String())

	a, ok := ParseAttribute("underlined")
	assert.True(t, ok)
	assert.Equal(t, Underlined, a)

	_, ok = ParseAttribute("underline")
	assert.False(t, ok)
	assert.Equal(t, "unknown", Attribute(42).String())
}
