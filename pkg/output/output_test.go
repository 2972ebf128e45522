package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"testing"

	"github.com/arthur-debert/progtmpl/pkg/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type fruit struct {
	Name  string `json:"name" yaml:"name" toml:"name"`
	Count int    `json:"count" yaml:"count" toml:"count"`
}

type basket struct {
	Owner  string  `json:"owner" yaml:"owner" toml:"owner"`
	Fruits []fruit `json:"fruits" yaml:"fruits" toml:"fruits"`
}

func (b basket) Text(w io.Writer) error {
	for _, f := range b.Fruits {
		if _, err := fmt.Fprintf(w, "%s %d\n", f.Name, f.Count); err != nil {
			return err
		}
	}
	return nil
}

func (b basket) Table() ([]string, [][]string) {
	rows := make([][]string, 0, len(b.Fruits))
	for _, f := range b.Fruits {
		rows = append(rows, []string{f.Name, fmt.Sprint(f.Count)})
	}
	return []string{"NAME", "COUNT"}, rows
}

var sample = basket{
	Owner:  "ada",
	Fruits: []fruit{{Name: "apple", Count: 3}, {Name: "fig", Count: 12}},
}

func printAs(t *testing.T, format Format) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, New(&buf, format, false).Print(sample))
	return buf.String()
}

func TestPrintText(t *testing.T) {
	assert.Equal(t, "apple 3\nfig 12\n", printAs(t, FormatText))
}

func TestPrintJSON(t *testing.T) {
	var decoded basket
	require.NoError(t, json.Unmarshal([]byte(printAs(t, FormatJSON)), &decoded))
	assert.Equal(t, sample, decoded)
}

func TestPrintYAML(t *testing.T) {
	out := printAs(t, FormatYAML)
	assert.Contains(t, out, "owner: ada")

	var decoded basket
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, sample, decoded)
}

func TestPrintTOML(t *testing.T) {
	var decoded basket
	require.NoError(t, toml.Unmarshal([]byte(printAs(t, FormatTOML)), &decoded))
	assert.Equal(t, sample, decoded)
}

func TestPrintTable(t *testing.T) {
	out := printAs(t, FormatTable)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "COUNT")
	assert.Contains(t, out, "apple")
	assert.Contains(t, out, "12")
	assert.NotContains(t, out, "\x1b[")

	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatTable, false).Print(basket{Owner: "empty"}))
	assert.Empty(t, buf.String())
}

func TestPrintTableLeavesStylingAlone(t *testing.T) {
	pterm.EnableStyling()
	t.Cleanup(pterm.EnableStyling)

	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatTable, false).Print(basket{
		Owner:  "ann",
		Fruits: []fruit{{Name: "fig", Count: 3}},
	}))
	assert.NotContains(t, buf.String(), "\x1b[")
	assert.False(t, pterm.RawOutput)
	assert.True(t, pterm.PrintColor)

	pterm.DisableStyling()
	buf.Reset()
	require.NoError(t, New(&buf, FormatTable, true).Print(basket{
		Owner:  "ann",
		Fruits: []fruit{{Name: "fig", Count: 3}},
	}))
	assert.Contains(t, buf.String(), "fig")
	assert.True(t, pterm.RawOutput)
	assert.False(t, pterm.PrintColor)
}

func TestWithStylingRestoresOnError(t *testing.T) {
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	err := WithStyling(true, func() error {
		assert.True(t, pterm.PrintColor)
		assert.False(t, pterm.RawOutput)
		return errors.New(errors.ErrInternal, "boom")
	})
	require.Error(t, err)
	assert.True(t, pterm.RawOutput)
	assert.False(t, pterm.PrintColor)
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats {
		got, err := ParseFormat(string(f))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	got, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatText, got)

	got, err = ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, got)

	_, err = ParseFormat("xml")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
