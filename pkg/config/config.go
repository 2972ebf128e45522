package config

import (
	"path/filepath"
	"sort"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/progtmpl/pkg/errors"
	"github.com/arthur-debert/progtmpl/pkg/logging"
	"github.com/arthur-debert/progtmpl/pkg/output"
	"github.com/arthur-debert/progtmpl/pkg/render"
	"github.com/arthur-debert/progtmpl/pkg/style"
	"github.com/arthur-debert/progtmpl/pkg/template"
)

// Config is the resolved progtmpl configuration.
type Config struct {
	Render    RenderConfig      `koanf:"render" toml:"render"`
	Limits    template.Limits   `koanf:"limits" toml:"limits"`
	Output    OutputConfig      `koanf:"output" toml:"output"`
	Templates map[string]string `koanf:"templates" toml:"templates,omitempty"`
	Styles    map[string]string `koanf:"styles" toml:"styles,omitempty"`
}

// RenderConfig controls how templates are written to the terminal.
type RenderConfig struct {
	Color  string `koanf:"color" toml:"color"`
	Strict bool   `koanf:"strict" toml:"strict"`
}

// OutputConfig controls the inspection commands.
type OutputConfig struct {
	Format string `koanf:"format" toml:"format"`
}

// ConfigPath returns the default user configuration file,
// $XDG_CONFIG_HOME/progtmpl/config.toml.
func ConfigPath() string {
	return filepath.Join(xdg.ConfigHome, logging.AppName, "config.toml")
}

// Validate checks values that the loader cannot type-check.
func (c *Config) Validate() error {
	if _, err := render.ParseColorMode(c.Render.Color); err != nil {
		return invalid("render.color", err)
	}

	if _, err := output.ParseFormat(c.Output.Format); err != nil {
		return invalid("output.format", err)
	}

	for field, v := range map[string]int{
		"limits.max_parts":  c.Limits.MaxParts,
		"limits.max_buffer": c.Limits.MaxBuffer,
		"limits.max_key":    c.Limits.MaxKey,
	} {
		if v < 0 {
			return errors.Newf(errors.ErrConfigValid, "%s must not be negative", field).
				WithDetail("field", field).
				WithDetail("value", v)
		}
	}

	for _, name := range sortedKeys(c.Styles) {
		if _, err := style.DecodeStrict(c.Styles[name]); err != nil {
			return invalid("styles."+name, err)
		}
	}

	for _, name := range sortedKeys(c.Templates) {
		if _, err := template.Compile(c.Templates[name], c.Limits); err != nil {
			return invalid("templates."+name, err)
		}
	}

	return nil
}

// NamedStyle resolves a style defined in the [styles] table.
func (c *Config) NamedStyle(name string) (style.Style, bool) {
	src, ok := c.Styles[name]
	if !ok {
		return style.Style{}, false
	}
	return style.Decode(src), true
}

// ResolveStyle decodes ref as a named style when one exists and as a dotted
// style otherwise.
func (c *Config) ResolveStyle(ref string) (style.Style, error) {
	if s, ok := c.NamedStyle(ref); ok {
		return s, nil
	}
	return style.DecodeStrict(ref)
}

func invalid(field string, err error) error {
	return errors.Wrapf(err, errors.ErrConfigValid, "invalid value for %s", field).
		WithDetail("field", field)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
