package topics

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const topicsDir = "/help"

func memTopics(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(topicsDir, 0755))
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, filepath.Join(topicsDir, name), []byte(content), 0644))
	}
	return fs
}

func TestTopicManager_ScanTopics(t *testing.T) {
	fs := memTopics(t, map[string]string{
		"strict.txt":      "Information about strict mode",
		"grammar.md":      "# Grammar\n\nPlaceholder syntax",
		"styles.txxt":     "Styles\n======",
		"ignore.json":     "This should be ignored",
		"advanced/alt.md": "Alternate styles",
	})

	t.Run("default extensions", func(t *testing.T) {
		tm := NewWithOptions(topicsDir, Options{Fs: fs})
		require.NoError(t, tm.scanTopics())

		tests := []struct {
			name     string
			expected bool
			content  string
		}{
			{"strict", true, "Information about strict mode"},
			{"grammar", true, "# Grammar\n\nPlaceholder syntax"},
			{"alt", true, "Alternate styles"},
			{"styles", false, ""},
			{"ignore", false, ""},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				topic, exists := tm.GetTopic(tt.name)
				assert.Equal(t, tt.expected, exists)
				if exists {
					assert.Equal(t, tt.content, topic.Content)
				}
			})
		}
	})

	t.Run("custom extensions", func(t *testing.T) {
		tm := NewWithOptions(topicsDir, Options{
			Fs:         fs,
			Extensions: []string{".txt", ".md", ".txxt"},
		})
		require.NoError(t, tm.scanTopics())

		topic, exists := tm.GetTopic("styles")
		require.True(t, exists)
		assert.Equal(t, "Styles\n======", topic.Content)

		_, exists = tm.GetTopic("ignore")
		assert.False(t, exists)
	})
}

func TestTopicManager_GetTopic(t *testing.T) {
	fs := memTopics(t, map[string]string{
		"option-strict.txt": "Strict help",
		"option-alt.txt":    "Alt help",
		"grammar.txt":       "Grammar help",
	})
	tm := NewWithOptions(topicsDir, Options{Fs: fs})
	require.NoError(t, tm.scanTopics())

	tests := []struct {
		input    string
		expected string
		exists   bool
	}{
		{"grammar", "grammar", true},
		{"option-strict", "option-strict", true},
		{"strict", "option-strict", true},
		{"--strict", "option-strict", true},
		{"-strict", "option-strict", true},
		{"--alt", "option-alt", true},
		{"-v", "", false},
		{"nonexistent", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			topic, exists := tm.GetTopic(tt.input)
			assert.Equal(t, tt.exists, exists)
			if exists {
				assert.Equal(t, tt.expected, topic.Name)
			}
		})
	}
}

func TestTopicManager_ListTopics(t *testing.T) {
	fs := memTopics(t, map[string]string{
		"styles.txt":  "Help for styles",
		"grammar.txt": "Help for grammar",
		"limits.txt":  "Help for limits",
	})
	tm := NewWithOptions(topicsDir, Options{Fs: fs})
	require.NoError(t, tm.scanTopics())

	assert.Equal(t, []string{"grammar", "limits", "styles"}, tm.ListTopics())
}

func TestNonexistentTopicsDir(t *testing.T) {
	tm := NewWithOptions("/nonexistent/directory", Options{Fs: afero.NewMemMapFs()})
	require.NoError(t, tm.scanTopics())
	assert.Empty(t, tm.ListTopics())
}

func TestOsFilesystemDefault(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, afero.WriteFile(afero.NewOsFs(), filepath.Join(dir, "disk.md"), []byte("on disk"), 0644))

	tm := New(dir)
	require.NoError(t, tm.scanTopics())
	topic, exists := tm.GetTopic("disk")
	require.True(t, exists)
	assert.Equal(t, "on disk", topic.Content)
}

func newRoot(t *testing.T, fs afero.Fs) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	rootCmd := &cobra.Command{Use: "testapp", Short: "Test application"}
	rootCmd.AddCommand(&cobra.Command{
		Use:   "render",
		Short: "Render a template",
		Run:   func(cmd *cobra.Command, args []string) {},
	})
	require.NoError(t, InitializeWithOptions(rootCmd, topicsDir, Options{Fs: fs}))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	return rootCmd, &out
}

func TestInitialize(t *testing.T) {
	rootCmd, _ := newRoot(t, memTopics(t, nil))

	helpCmd, _, err := rootCmd.Find([]string{"help"})
	require.NoError(t, err)
	assert.Equal(t, "help [command or topic]", helpCmd.Use)

	completions, directive := helpCmd.ValidArgsFunction(helpCmd, nil, "")
	assert.Contains(t, completions, "topics")
	assert.Contains(t, completions, "render")
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
}

func TestIntegration_HelpCommand(t *testing.T) {
	rootCmd, out := newRoot(t, memTopics(t, map[string]string{
		"strict.txt":       "STRICT MODE\nMissing keys fail the render.",
		"option-alt.txt":   "Use alternate styles.",
		"placeholders.txt": "Placeholder grammar",
	}))

	rootCmd.SetArgs([]string{"help", "strict"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "STRICT MODE")

	out.Reset()
	rootCmd.SetArgs([]string{"help", "topics"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Available help topics:")
	assert.Contains(t, out.String(), "  placeholders")
	assert.Contains(t, out.String(), "  --alt")
	assert.Contains(t, out.String(), "Use 'testapp help <topic>'")

	out.Reset()
	rootCmd.SetArgs([]string{"help", "render"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Render a template")
}

func TestEmptyTopicList(t *testing.T) {
	rootCmd, out := newRoot(t, memTopics(t, nil))

	rootCmd.SetArgs([]string{"help", "topics"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "No help topics available.")
}
