package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arthur-debert/progtmpl/pkg/output"
	"github.com/arthur-debert/progtmpl/pkg/source"
	"github.com/arthur-debert/progtmpl/pkg/style"
	"github.com/arthur-debert/progtmpl/pkg/template"
)

const previewSample = "The quick brown fox"

// CompileResult lists the parts of a compiled template.
type CompileResult struct {
	Source string              `json:"source" yaml:"source" toml:"source"`
	Parts  []template.PartView `json:"parts" yaml:"parts" toml:"parts"`
}

func newCompileResult(t *template.Template) *CompileResult {
	return &CompileResult{Source: t.String(), Parts: t.Views()}
}

func (r *CompileResult) Text(w io.Writer) error {
	fmt.Fprintf(w, "source: %q\n", r.Source)
	for i, p := range r.Parts {
		switch p.Kind {
		case "literal":
			fmt.Fprintf(w, "%3d  literal      %q\n", i, p.Text)
		case "newline":
			fmt.Fprintf(w, "%3d  newline\n", i)
		default:
			fmt.Fprintf(w, "%3d  placeholder  %s%s\n", i, p.Key, placeholderAttrs(p))
		}
	}
	return nil
}

func (r *CompileResult) Table() ([]string, [][]string) {
	header := []string{"#", "KIND", "TEXT/KEY", "ALIGN", "WIDTH", "TRUNCATE", "STYLE", "ALT STYLE"}
	rows := make([][]string, 0, len(r.Parts))
	for i, p := range r.Parts {
		row := []string{strconv.Itoa(i), p.Kind, p.Text, p.Align, "", "", p.Style, p.AltStyle}
		if p.Kind == "placeholder" {
			row[2] = p.Key
			row[4] = widthText(p.Width)
			row[5] = strconv.FormatBool(p.Truncate)
		} else if p.Kind == "literal" {
			row[2] = strconv.Quote(p.Text)
		}
		rows = append(rows, row)
	}
	return header, rows
}

func placeholderAttrs(p template.PartView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  align=%s", p.Align)
	if p.Width != nil {
		fmt.Fprintf(&b, " width=%d", *p.Width)
	}
	if p.Truncate {
		b.WriteString(" truncate")
	}
	if p.Style != "" {
		fmt.Fprintf(&b, " style=%s", p.Style)
	}
	if p.AltStyle != "" {
		fmt.Fprintf(&b, " alt=%s", p.AltStyle)
	}
	return b.String()
}

func widthText(w *int) string {
	if w == nil {
		return "-"
	}
	return strconv.Itoa(*w)
}

// KeysResult lists the keys a template uses.
type KeysResult struct {
	Keys []string `json:"keys" yaml:"keys" toml:"keys"`
}

func (r *KeysResult) Text(w io.Writer) error {
	for _, k := range r.Keys {
		fmt.Fprintln(w, k)
	}
	return nil
}

func (r *KeysResult) Table() ([]string, [][]string) {
	rows := make([][]string, 0, len(r.Keys))
	for _, k := range r.Keys {
		rows = append(rows, []string{k})
	}
	return []string{"KEY"}, rows
}

// StyleResult describes a decoded style.
type StyleResult struct {
	Input      string   `json:"input" yaml:"input" toml:"input"`
	Style      string   `json:"style" yaml:"style" toml:"style"`
	Foreground string   `json:"foreground" yaml:"foreground" toml:"foreground"`
	Background string   `json:"background" yaml:"background" toml:"background"`
	Bright     bool     `json:"bright" yaml:"bright" toml:"bright"`
	OnBright   bool     `json:"on_bright" yaml:"on_bright" toml:"on_bright"`
	Attributes []string `json:"attributes" yaml:"attributes" toml:"attributes"`

	Preview string `json:"-" yaml:"-" toml:"-"`
}

func newStyleResult(input string, s style.Style, color bool) *StyleResult {
	attrs := make([]string, 0, s.Attrs.Len())
	for _, a := range s.Attrs.List() {
		attrs = append(attrs, a.String())
	}

	var preview string
	_ = output.WithStyling(color, func() error {
		preview = s.Pterm().Sprint(previewSample)
		return nil
	})

	return &StyleResult{
		Input:      input,
		Style:      s.String(),
		Foreground: s.Fg.String(),
		Background: s.Bg.String(),
		Bright:     s.FgBright,
		OnBright:   s.BgBright,
		Attributes: attrs,
		Preview:    preview,
	}
}

func (r *StyleResult) Text(w io.Writer) error {
	attrs := strings.Join(r.Attributes, ", ")
	if attrs == "" {
		attrs = "none"
	}
	fmt.Fprintf(w, "style:       %s\n", r.Style)
	fmt.Fprintf(w, "foreground:  %s%s\n", r.Foreground, brightSuffix(r.Bright))
	fmt.Fprintf(w, "background:  %s%s\n", r.Background, brightSuffix(r.OnBright))
	fmt.Fprintf(w, "attributes:  %s\n", attrs)
	fmt.Fprintf(w, "preview:     %s\n", r.Preview)
	return nil
}

func (r *StyleResult) Table() ([]string, [][]string) {
	return []string{"FIELD", "VALUE"}, [][]string{
		{"style", r.Style},
		{"foreground", r.Foreground + brightSuffix(r.Bright)},
		{"background", r.Background + brightSuffix(r.OnBright)},
		{"attributes", strings.Join(r.Attributes, ", ")},
		{"preview", r.Preview},
	}
}

func brightSuffix(bright bool) string {
	if bright {
		return " (bright)"
	}
	return ""
}

// TemplatesResult lists the named templates in precedence order.
type TemplatesResult struct {
	Templates []*source.Entry `json:"templates" yaml:"templates" toml:"templates"`
}

func (r *TemplatesResult) Text(w io.Writer) error {
	if len(r.Templates) == 0 {
		fmt.Fprintln(w, MsgNoTemplates)
		return nil
	}

	nameWidth, originWidth := 0, 0
	for _, e := range r.Templates {
		nameWidth = max(nameWidth, len(e.Name))
		originWidth = max(originWidth, len(e.Origin))
	}
	for _, e := range r.Templates {
		fmt.Fprintf(w, "%-*s  %-*s  %s\n", nameWidth, e.Name, originWidth, e.Origin, oneLine(e.Source))
	}
	return nil
}

func (r *TemplatesResult) Table() ([]string, [][]string) {
	rows := make([][]string, 0, len(r.Templates))
	for _, e := range r.Templates {
		rows = append(rows, []string{e.Name, e.Origin, oneLine(e.Source)})
	}
	return []string{"NAME", "ORIGIN", "SOURCE"}, rows
}

func oneLine(s string) string {
	return strings.ReplaceAll(s, "\n", `\n`)
}
