// Package output prints command results as text, JSON, YAML, TOML or a
// pterm table.
package output

import (
	"encoding/json"
	"io"
	"strings"
	"sync"

	"github.com/arthur-debert/progtmpl/pkg/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"
)

// Format represents the output format type
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTOML  Format = "toml"
	FormatTable Format = "table"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatTOML, FormatTable}

// ParseFormat parses a string into a Format value
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML, FormatTOML, FormatTable:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return FormatText, errors.Newf(errors.ErrInvalidInput, "unknown format: %s", s).
			WithDetail("value", s)
	}
}

// Result is a command result printable in every format. Encoded formats
// marshal the value itself.
type Result interface {
	// Text writes the human readable form.
	Text(w io.Writer) error
	// Table returns the header and rows of the tabular form.
	Table() (header []string, rows [][]string)
}

// Printer writes results in one format.
type Printer struct {
	out    io.Writer
	format Format
	color  bool
}

// New creates a printer. Color only affects the table format.
func New(out io.Writer, format Format, color bool) *Printer {
	return &Printer{out: out, format: format, color: color}
}

// Format returns the printer's format.
func (p *Printer) Format() Format {
	return p.format
}

// Print writes r to the output.
func (p *Printer) Print(r Result) error {
	var err error
	switch p.format {
	case FormatJSON:
		encoder := json.NewEncoder(p.out)
		encoder.SetIndent("", "  ")
		err = encoder.Encode(r)
	case FormatYAML:
		encoder := yaml.NewEncoder(p.out)
		encoder.SetIndent(2)
		err = encoder.Encode(r)
		if err == nil {
			err = encoder.Close()
		}
	case FormatTOML:
		err = toml.NewEncoder(p.out).Encode(r)
	case FormatTable:
		err = p.printTable(r)
	default:
		err = r.Text(p.out)
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "failed to write %s output", p.format).
			WithDetail("format", string(p.format))
	}
	return nil
}

func (p *Printer) printTable(r Result) error {
	header, rows := r.Table()
	if len(rows) == 0 {
		return nil
	}

	data := make(pterm.TableData, 0, len(rows)+1)
	data = append(data, header)
	data = append(data, rows...)
	return WithStyling(p.color, func() error {
		return pterm.DefaultTable.
			WithHasHeader().
			WithData(data).
			WithWriter(p.out).
			Render()
	})
}

// stylingMu serializes changes to pterm's package-level styling switches.
var stylingMu sync.Mutex

// WithStyling runs fn with pterm styling turned on or off and puts the
// previous setting back when fn returns.
func WithStyling(color bool, fn func() error) error {
	stylingMu.Lock()
	defer stylingMu.Unlock()

	raw, printColor := pterm.RawOutput, pterm.PrintColor
	defer func() {
		if printColor {
			pterm.EnableColor()
		} else {
			pterm.DisableColor()
		}
		pterm.RawOutput = raw
	}()

	if color {
		pterm.EnableStyling()
	} else {
		pterm.DisableStyling()
	}
	return fn()
}
