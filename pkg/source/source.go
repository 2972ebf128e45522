// Package source finds named templates in configuration, on disk and among
// the built-ins, and compiles them.
package source

import (
	"embed"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/progtmpl/pkg/errors"
	"github.com/arthur-debert/progtmpl/pkg/logging"
	"github.com/arthur-debert/progtmpl/pkg/template"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	// TemplateExt marks a file holding a single template.
	TemplateExt = ".tmpl"

	// OriginConfig and OriginBuiltin label entries that do not come from a
	// search path.
	OriginConfig  = "config"
	OriginBuiltin = "builtin"

	builtinDir = "builtin"
)

//go:embed builtin/*
var builtinFS embed.FS

// Entry is a named, compiled template.
type Entry struct {
	Name     string             `json:"name" yaml:"name" toml:"name"`
	Origin   string             `json:"origin" yaml:"origin" toml:"origin"`
	Source   string             `json:"source" yaml:"source" toml:"source"`
	Template *template.Template `json:"-" yaml:"-" toml:"-"`
}

// bundle is the layout of a YAML template file.
type bundle struct {
	Templates map[string]string `yaml:"templates"`
}

// SearchPaths returns template search directories in precedence order.
func SearchPaths(projectDir string) []string {
	paths := make([]string, 0, 2)
	if projectDir != "" {
		paths = append(paths, filepath.Join(projectDir, "."+logging.AppName, "templates"))
	}
	paths = append(paths, filepath.Join(xdg.ConfigHome, logging.AppName, "templates"))
	return paths
}

// Loader reads and compiles templates through an afero filesystem.
type Loader struct {
	fs         afero.Fs
	builtin    afero.Fs
	limits     template.Limits
	configured map[string]string
	logger     zerolog.Logger
}

// NewLoader creates a loader over fs. Configured templates take precedence
// over any file.
func NewLoader(fs afero.Fs, limits template.Limits, configured map[string]string) *Loader {
	return &Loader{
		fs:         fs,
		builtin:    afero.FromIOFS{FS: builtinFS},
		limits:     limits,
		configured: configured,
		logger:     logging.GetLogger("source"),
	}
}

// LoadAll returns every reachable template: configured ones, then the search
// paths, then the built-ins. The first definition of a name wins.
func (l *Loader) LoadAll(projectDir string) ([]*Entry, error) {
	done := logging.LogOperationStart(l.logger, "load templates")
	defer done()

	seen := make(map[string]bool)
	var resolved []*Entry
	add := func(entries []*Entry) {
		for _, e := range entries {
			if seen[e.Name] {
				l.logger.Debug().Str("name", e.Name).Str("origin", e.Origin).Msg("Template shadowed")
				continue
			}
			seen[e.Name] = true
			resolved = append(resolved, e)
		}
	}

	configured, err := l.compileAll(l.configured, OriginConfig)
	if err != nil {
		return nil, err
	}
	add(configured)

	for _, dir := range SearchPaths(projectDir) {
		entries, err := l.LoadDir(dir)
		if err != nil {
			return nil, err
		}
		add(entries)
	}

	builtins, err := l.loadDir(l.builtin, builtinDir, OriginBuiltin)
	if err != nil {
		return nil, err
	}
	add(builtins)

	return resolved, nil
}

// Get returns the template called name.
func (l *Loader) Get(projectDir, name string) (*Entry, error) {
	entries, err := l.LoadAll(projectDir)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.Name == name {
			return e, nil
		}
	}
	return nil, errors.Newf(errors.ErrTemplateNotFound, "template %q not found", name).
		WithDetail("name", name).
		WithDetail("search_paths", SearchPaths(projectDir))
}

// LoadDir loads the template files directly inside dir. A missing directory
// holds no templates.
func (l *Loader) LoadDir(dir string) ([]*Entry, error) {
	return l.loadDir(l.fs, dir, "")
}

// LoadFile compiles a single template file. The name is the file's base
// name without extension.
func (l *Loader) LoadFile(path string) (*Entry, error) {
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to read template file %s", path).
			WithDetail("path", path)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return l.compile(name, trimNewline(string(data)), path)
}

func (l *Loader) loadDir(fs afero.Fs, dir, origin string) ([]*Entry, error) {
	exists, err := afero.DirExists(fs, dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to read template directory %s", dir).
			WithDetail("path", dir)
	}
	if !exists {
		return nil, nil
	}

	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to read template directory %s", dir).
			WithDetail("path", dir)
	}

	var entries []*Entry
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		path := filepath.Join(dir, info.Name())
		if origin != "" {
			// embedded paths are slash separated on every platform
			path = dir + "/" + info.Name()
		}
		label := origin
		if label == "" {
			label = path
		}

		switch filepath.Ext(info.Name()) {
		case TemplateExt:
			data, err := afero.ReadFile(fs, path)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to read template file %s", path).
					WithDetail("path", path)
			}
			name := strings.TrimSuffix(info.Name(), TemplateExt)
			entry, err := l.compile(name, trimNewline(string(data)), label)
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry)

		case ".yaml", ".yml":
			bundled, err := l.loadBundle(fs, path, label)
			if err != nil {
				return nil, err
			}
			entries = append(entries, bundled...)

		default:
			l.logger.Trace().Str("path", path).Msg("Skipping non-template file")
		}
	}

	l.logger.Debug().Str("dir", dir).Int("count", len(entries)).Msg("Loaded template directory")
	return entries, nil
}

func (l *Loader) loadBundle(fs afero.Fs, path, label string) ([]*Entry, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to read template bundle %s", path).
			WithDetail("path", path)
	}

	var b bundle
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplateInvalid, "failed to parse template bundle %s", path).
			WithDetail("path", path)
	}
	return l.compileAll(b.Templates, label)
}

func (l *Loader) compileAll(sources map[string]string, origin string) ([]*Entry, error) {
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]*Entry, 0, len(names))
	for _, name := range names {
		entry, err := l.compile(name, sources[name], origin)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (l *Loader) compile(name, src, origin string) (*Entry, error) {
	tmpl, err := template.Compile(src, l.limits)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplateInvalid, "template %q from %s does not compile", name, origin).
			WithDetail("name", name).
			WithDetail("origin", origin)
	}
	return &Entry{Name: name, Origin: origin, Source: src, Template: tmpl}, nil
}

// trimNewline drops the single line break editors leave at end of file.
func trimNewline(s string) string {
	if strings.HasSuffix(s, "\r\n") {
		return s[:len(s)-2]
	}
	return strings.TrimSuffix(s, "\n")
}
