package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/progtmpl/pkg/errors"
	"github.com/arthur-debert/progtmpl/pkg/template"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const project = "/work/project"

func setup(t *testing.T) (afero.Fs, string) {
	t.Helper()
	configHome := "/home/user/.config"
	t.Setenv("XDG_CONFIG_HOME", configHome)
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return afero.NewMemMapFs(), filepath.Join(configHome, "progtmpl", "templates")
}

func write(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
}

func names(entries []*Entry) []string {
	var out []string
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

func TestSearchPaths(t *testing.T) {
	_, userDir := setup(t)

	assert.Equal(t, []string{
		filepath.Join(project, ".progtmpl", "templates"),
		userDir,
	}, SearchPaths(project))
	assert.Equal(t, []string{userDir}, SearchPaths(""))
}

func TestLoadDir(t *testing.T) {
	fs, _ := setup(t)
	dir := filepath.Join(project, ".progtmpl", "templates")
	write(t, fs, filepath.Join(dir, "greeting.tmpl"), "Hello {name:.bold}\n")
	write(t, fs, filepath.Join(dir, "bundle.yaml"), "templates:\n  row: \"{a:>4} {b}\"\n  head: \"{title:^20}\"\n")
	write(t, fs, filepath.Join(dir, "notes.txt"), "not a template")
	require.NoError(t, fs.MkdirAll(filepath.Join(dir, "nested"), 0755))

	loader := NewLoader(fs, template.Limits{}, nil)
	entries, err := loader.LoadDir(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"head", "row", "greeting"}, names(entries))
	greeting := entries[2]
	assert.Equal(t, "Hello {name:.bold}", greeting.Source, "one trailing newline is stripped")
	assert.Equal(t, filepath.Join(dir, "greeting.tmpl"), greeting.Origin)
	assert.Equal(t, []string{"name"}, greeting.Template.Keys())
	assert.Equal(t, filepath.Join(dir, "bundle.yaml"), entries[0].Origin)
}

func TestLoadDirMissing(t *testing.T) {
	fs, _ := setup(t)

	entries, err := NewLoader(fs, template.Limits{}, nil).LoadDir("/nowhere")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// deniedFs fails every Stat under root with a permission error.
type deniedFs struct {
	afero.Fs
	root string
}

func (d deniedFs) Stat(name string) (os.FileInfo, error) {
	if name == d.root || filepath.Dir(name) == d.root {
		return nil, &os.PathError{Op: "stat", Path: name, Err: os.ErrPermission}
	}
	return d.Fs.Stat(name)
}

func TestLoadDirUnreadable(t *testing.T) {
	fs, _ := setup(t)
	dir := filepath.Join(project, ".progtmpl", "templates")
	write(t, fs, filepath.Join(dir, "greeting.tmpl"), "Hello {name}")

	loader := NewLoader(deniedFs{Fs: fs, root: dir}, template.Limits{}, nil)
	_, err := loader.LoadDir(dir)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileRead))
	assert.Equal(t, dir, errors.GetErrorDetails(err)["path"])
	assert.ErrorIs(t, err, os.ErrPermission)

	_, err = loader.LoadAll(project)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileRead))
}

func TestLoadAllPrecedence(t *testing.T) {
	fs, userDir := setup(t)
	projectDir := filepath.Join(project, ".progtmpl", "templates")
	write(t, fs, filepath.Join(projectDir, "greeting.tmpl"), "project {name}")
	write(t, fs, filepath.Join(projectDir, "only-project.tmpl"), "p")
	write(t, fs, filepath.Join(userDir, "greeting.tmpl"), "user {name}")
	write(t, fs, filepath.Join(userDir, "status.tmpl"), "user status {state}")
	write(t, fs, filepath.Join(userDir, "only-user.tmpl"), "u")

	loader := NewLoader(fs, template.Limits{}, map[string]string{"greeting": "config {name}"})
	entries, err := loader.LoadAll(project)
	require.NoError(t, err)

	byName := make(map[string]*Entry)
	for _, e := range entries {
		byName[e.Name] = e
	}

	assert.Equal(t, "config {name}", byName["greeting"].Source)
	assert.Equal(t, OriginConfig, byName["greeting"].Origin)
	assert.Equal(t, "p", byName["only-project"].Source)
	assert.Equal(t, "u", byName["only-user"].Source)
	assert.Equal(t, "user status {state}", byName["status"].Source, "files shadow built-ins")
	assert.Equal(t, OriginBuiltin, byName["kv"].Origin)
	assert.Equal(t, OriginBuiltin, byName["step"].Origin)
	assert.Equal(t, "greeting", entries[0].Name)
}

func TestBuiltins(t *testing.T) {
	fs, _ := setup(t)

	entries, err := NewLoader(fs, template.Limits{}, nil).LoadAll("")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"done", "step", "kv", "status"}, names(entries))

	for _, e := range entries {
		assert.NotEmpty(t, e.Template.Keys(), e.Name)
	}
}

func TestGet(t *testing.T) {
	fs, userDir := setup(t)
	write(t, fs, filepath.Join(userDir, "row.tmpl"), "{a} {b}")
	loader := NewLoader(fs, template.Limits{}, nil)

	entry, err := loader.Get(project, "row")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, entry.Template.Keys())

	_, err = loader.Get(project, "absent")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateNotFound))
	assert.Equal(t, "absent", errors.GetErrorDetails(err)["name"])
}

func TestLoadFile(t *testing.T) {
	fs, _ := setup(t)
	write(t, fs, "/tmp/report.tmpl", "{title:^10}\r\n")
	loader := NewLoader(fs, template.Limits{}, nil)

	entry, err := loader.LoadFile("/tmp/report.tmpl")
	require.NoError(t, err)
	assert.Equal(t, "report", entry.Name)
	assert.Equal(t, "{title:^10}", entry.Source)

	_, err = loader.LoadFile("/tmp/missing.tmpl")
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileRead))
}

func TestLoadErrors(t *testing.T) {
	fs, userDir := setup(t)

	write(t, fs, filepath.Join(userDir, "broken.yaml"), "templates: [unclosed")
	_, err := NewLoader(fs, template.Limits{}, nil).LoadAll("")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateInvalid))

	require.NoError(t, fs.Remove(filepath.Join(userDir, "broken.yaml")))
	write(t, fs, filepath.Join(userDir, "long.tmpl"), "{a_very_long_key}")
	_, err = NewLoader(fs, template.Limits{MaxKey: 4}, nil).LoadAll("")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateInvalid))
	assert.Equal(t, "long", errors.GetErrorDetails(err)["name"])

	_, err = NewLoader(fs, template.Limits{MaxKey: 4}, map[string]string{"cfg": "{toolong}"}).LoadAll("")
	require.Error(t, err)
	assert.Equal(t, OriginConfig, errors.GetErrorDetails(err)["origin"])
}

func TestTrimNewline(t *testing.T) {
	assert.Equal(t, "a", trimNewline("a\n"))
	assert.Equal(t, "a\n", trimNewline("a\n\n"))
	assert.Equal(t, "a", trimNewline("a\r\n"))
	assert.Equal(t, "a", trimNewline("a"))
}
