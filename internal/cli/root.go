// Package cli implements the progtmpl command line.
package cli

import (
	"embed"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/arthur-debert/progtmpl/internal/version"
	"github.com/arthur-debert/progtmpl/pkg/cobrax/topics"
	"github.com/arthur-debert/progtmpl/pkg/config"
	"github.com/arthur-debert/progtmpl/pkg/errors"
	"github.com/arthur-debert/progtmpl/pkg/logging"
	"github.com/arthur-debert/progtmpl/pkg/output"
	"github.com/arthur-debert/progtmpl/pkg/render"
	"github.com/arthur-debert/progtmpl/pkg/source"
	"github.com/arthur-debert/progtmpl/pkg/style"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicsFS embed.FS

// skipSetup marks commands that run without loading the configuration.
const skipSetup = "progtmpl/skip-setup"

// flagOverrides maps flags onto the configuration keys they override.
var flagOverrides = map[string]string{
	"color":  "render.color",
	"format": "output.format",
	"strict": "render.strict",
}

// globalFlags holds the persistent flags of the root command.
type globalFlags struct {
	verbosity  int
	configFile string
	format     string
	color      string
	project    string
}

// app is the state shared by commands once configuration is loaded.
type app struct {
	fs         afero.Fs
	flags      *globalFlags
	cfg        *config.Config
	projectDir string
	renderer   *render.Renderer
	loader     *source.Loader
	printer    *output.Printer
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(afero.NewOsFs())
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	initTemplateFormatting()

	flags := &globalFlags{}
	a := &app{fs: fs, flags: flags}

	rootCmd := &cobra.Command{
		Use:     logging.AppName,
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLoggerWithOutput(flags.verbosity, cmd.ErrOrStderr())
			logging.LogCommand(cmd.Name(), args)
			if cmd.Annotations[skipSetup] == "true" || cmd.Name() == "help" || cmd.Name() == cobra.ShellCompRequestCmd {
				return nil
			}
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, "no command specified")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&flags.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVarP(&flags.format, "format", "o", "", MsgFlagFormat)
	rootCmd.PersistentFlags().StringVar(&flags.color, "color", "", MsgFlagColor)
	rootCmd.PersistentFlags().StringVarP(&flags.project, "project", "p", "", MsgFlagProject)

	_ = rootCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		formats := make([]string, 0, len(output.Formats))
		for _, f := range output.Formats {
			formats = append(formats, string(f))
		}
		return formats, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("color", cobra.FixedCompletions(
		[]string{"auto", "always", "never"}, cobra.ShellCompDirectiveNoFileComp))

	// Disable automatic help command (we'll use our custom one from topics)
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "config",
		Title: "CONFIGURATION:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newRenderCmd(a))
	rootCmd.AddCommand(newCompileCmd(a))
	rootCmd.AddCommand(newKeysCmd(a))
	rootCmd.AddCommand(newStyleCmd(a))
	rootCmd.AddCommand(newTemplatesCmd(a))
	rootCmd.AddCommand(newGenConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd(a))
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	glamour := topics.NewGlamourRenderer()
	if render.DetectProfile(os.Stdout) == termenv.Ascii {
		glamour = topics.NewPlainGlamourRenderer()
	}
	opts := topics.Options{
		Fs:         afero.FromIOFS{FS: topicsFS},
		Extensions: []string{".md"},
		Renderer:   glamour,
	}
	if err := topics.InitializeWithOptions(rootCmd, "topics", opts); err != nil {
		log.Debug().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

// setup loads the configuration and builds the shared state.
func (a *app) setup(cmd *cobra.Command) error {
	logger := logging.GetLogger("cli")
	flags := a.flags

	overrides := make(map[string]interface{})
	for name, key := range flagOverrides {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			overrides[key] = f.Value.String()
		}
	}

	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: flags.configFile,
		Overrides:  overrides,
	})
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.projectDir = flags.project
	if a.projectDir == "" {
		if a.projectDir, err = os.Getwd(); err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to get working directory")
		}
	}

	// Both values were checked by config.Validate.
	mode, _ := render.ParseColorMode(cfg.Render.Color)
	format, _ := output.ParseFormat(cfg.Output.Format)

	a.renderer = render.New(
		render.WithOutput(cmd.OutOrStdout()),
		render.WithErrOutput(cmd.ErrOrStderr()),
		render.WithColorMode(mode),
		render.WithStrict(cfg.Render.Strict),
	)
	a.loader = source.NewLoader(a.fs, cfg.Limits, cfg.Templates)
	a.printer = output.New(cmd.OutOrStdout(), format, a.renderer.ColorProfile() != termenv.Ascii)

	logger.Debug().
		Str("project", a.projectDir).
		Str("format", string(format)).
		Str("color", mode.String()).
		Int("overrides", len(overrides)).
		Msg("Configuration loaded")
	return nil
}

// PrintError writes err to w, followed by its details in key order.
func PrintError(w io.Writer, err error) {
	r := lipgloss.NewRenderer(w)
	label := style.New().Red().Bold().Lipgloss(r.NewStyle())
	dim := style.New().Dim().Lipgloss(r.NewStyle())

	fmt.Fprintf(w, "%s %v\n", label.Render("Error:"), err)

	details := errors.GetErrorDetails(err)
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s %v\n", dim.Render(k+":"), details[k])
	}
}
