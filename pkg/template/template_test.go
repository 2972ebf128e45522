package template

import (
	"sync"
	"testing"

	"github.com/arthur-debert/progtmpl/pkg/errors"
	"github.com/arthur-debert/progtmpl/pkg/style"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateAccessors(t *testing.T) {
	tmpl := Parse("{user} logged in as {role:>8}, welcome {user}")

	assert.Equal(t, 5, tmpl.Len())
	assert.Equal(t, []string{"user", "role"}, tmpl.Keys())

	placeholders := tmpl.Placeholders()
	require.Len(t, placeholders, 3)
	assert.Equal(t, "role", placeholders[1].Key)
	assert.True(t, placeholders[1].HasWidth())
	assert.Equal(t, 8, placeholders[1].CellWidth())
	assert.False(t, placeholders[0].HasWidth())
	assert.Equal(t, 0, placeholders[0].CellWidth())

	p, ok := tmpl.Part(1)
	require.True(t, ok)
	assert.Equal(t, KindLiteral, p.Kind())

	_, ok = tmpl.Part(5)
	assert.False(t, ok)
	_, ok = tmpl.Part(-1)
	assert.False(t, ok)
}

func TestTemplatePartsIsACopy(t *testing.T) {
	tmpl := Parse("a{b}")
	parts := tmpl.Parts()
	parts[0] = lit("changed")

	assert.Equal(t, lit("a"), tmpl.Parts()[0])
}

func TestNew(t *testing.T) {
	tmpl, err := New(lit("id: "), Placeholder{Key: "id", Width: intPtr(4)}, NewLine{})
	require.NoError(t, err)
	assert.Equal(t, "id: {id:4}\n", tmpl.String())

	_, err = New(lit("x"), Placeholder{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateInvalid))
	assert.Equal(t, 1, errors.GetErrorDetails(err)["index"])
}

func TestTemplateString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "canonical source is preserved",
			input: "Hi {name}, {count:>3!.red.bold/green} done\n{{esc}}",
			want:  "Hi {name}, {count:>3!.red.bold/green} done\n{{esc}}",
		},
		{
			name:  "lone close brace is escaped",
			input: "a}b",
			want:  "a}}b",
		},
		{
			name:  "left alignment is implied",
			input: "{n:<4}",
			want:  "{n:4}",
		},
		{
			name:  "style is canonicalized",
			input: "{n:bold.red.bold}",
			want:  "{n:.red.bold}",
		},
		{
			name:  "truncate shorthand",
			input: "{n!}",
			want:  "{n:!}",
		},
		{
			name:  "empty format is dropped",
			input: "{n:}",
			want:  "{n}",
		},
		{
			name:  "abandoned placeholder is escaped",
			input: "{ x}",
			want:  "{{ x}}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.input).String())
		})
	}
}

func TestTemplateStringRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"{a}{b:^10}\n\n{c:.on_bright.on_blue/196.italic}",
		"{k:>65535!.bright.white.on_255.underlined}",
		"braces {{ and }} survive",
		"{x:/dim}",
	}

	for _, input := range inputs {
		tmpl := Parse(input)
		again := Parse(tmpl.String())
		assert.Equal(t, tmpl.Parts(), again.Parts(), "input %q", input)
	}
}

func TestViews(t *testing.T) {
	tmpl := Parse("id {id:^6!.red/blue}\n")
	views := tmpl.Views()

	require.Len(t, views, 3)
	assert.Equal(t, PartView{Kind: "literal", Text: "id "}, views[0])
	assert.Equal(t, PartView{
		Kind:     "placeholder",
		Key:      "id",
		Align:    "center",
		Width:    intPtr(6),
		Truncate: true,
		Style:    "red",
		AltStyle: "blue",
	}, views[1])
	assert.Equal(t, PartView{Kind: "newline"}, views[2])

	assert.Equal(t, PartView{Kind: "placeholder", Key: "k", Align: "left"}, View(Placeholder{Key: "k"}))
}

func TestTemplateConcurrentUse(t *testing.T) {
	tmpl := Parse("{a:.red} {b}\n{a}")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, []string{"a", "b"}, tmpl.Keys())
			assert.Equal(t, "{a:.red} {b}\n{a}", tmpl.String())
		}()
	}
	wg.Wait()
}

func TestPlaceholderStylesAreIndependent(t *testing.T) {
	tmpl := Parse("{a:red}{b:red}")
	phs := tmpl.Placeholders()
	require.Len(t, phs, 2)
	require.NotNil(t, phs[0].Style)
	require.NotNil(t, phs[1].Style)

	assert.Equal(t, *phs[0].Style, *phs[1].Style)
	assert.NotSame(t, phs[0].Style, phs[1].Style)
	assert.Equal(t, style.New().Red(), *phs[0].Style)
}
