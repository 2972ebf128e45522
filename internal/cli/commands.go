package cli

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/progtmpl/internal/version"
	"github.com/arthur-debert/progtmpl/pkg/config"
	"github.com/arthur-debert/progtmpl/pkg/errors"
	"github.com/arthur-debert/progtmpl/pkg/logging"
	"github.com/arthur-debert/progtmpl/pkg/render"
	"github.com/arthur-debert/progtmpl/pkg/source"
	"github.com/arthur-debert/progtmpl/pkg/template"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// templateFlags selects where a command reads its template from.
type templateFlags struct {
	name string
	file string
}

func (f *templateFlags) register(cmd *cobra.Command, a *app) {
	cmd.Flags().StringVarP(&f.name, "name", "n", "", MsgFlagName)
	cmd.Flags().StringVarP(&f.file, "file", "f", "", MsgFlagFile)
	_ = cmd.RegisterFlagCompletionFunc("name", a.templateNamesCompletion)
}

// resolveTemplate returns the selected template and the arguments left
// after it.
func (a *app) resolveTemplate(f *templateFlags, args []string) (*template.Template, []string, error) {
	switch {
	case f.name != "" && f.file != "":
		return nil, nil, errors.New(errors.ErrInvalidInput, MsgErrBothSources)
	case f.name != "":
		entry, err := a.loader.Get(a.projectDir, f.name)
		if err != nil {
			return nil, nil, err
		}
		return entry.Template, args, nil
	case f.file != "":
		entry, err := a.loader.LoadFile(f.file)
		if err != nil {
			return nil, nil, err
		}
		return entry.Template, args, nil
	case len(args) == 0:
		return nil, nil, errors.New(errors.ErrInvalidInput, MsgErrNoTemplate)
	default:
		t, err := template.Compile(args[0], a.cfg.Limits)
		if err != nil {
			return nil, nil, err
		}
		return t, args[1:], nil
	}
}

// templateNamesCompletion provides shell completion for template names.
// Completion skips the pre-run hooks, so the global flags are applied here.
func (a *app) templateNamesCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if err := a.setup(cmd); err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	entries, err := a.loader.LoadAll(a.projectDir)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func newRenderCmd(a *app) *cobra.Command {
	var (
		tf        templateFlags
		alt       bool
		noNewline bool
	)

	cmd := &cobra.Command{
		Use:     "render [template] [key=value...]",
		Short:   MsgRenderShort,
		Long:    MsgRenderLong,
		Example: MsgRenderExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cli.render")

			t, rest, err := a.resolveTemplate(&tf, args)
			if err != nil {
				return err
			}
			values, err := render.ParseValues(rest)
			if err != nil {
				return err
			}

			logger.Debug().
				Strs("keys", t.Keys()).
				Int("values", len(values)).
				Bool("alt", alt).
				Msg("Rendering template")

			if err := a.renderer.Print(t, values, alt); err != nil {
				return err
			}
			if !noNewline {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}

	tf.register(cmd, a)
	cmd.Flags().BoolVarP(&alt, "alt", "a", false, MsgFlagAlt)
	cmd.Flags().Bool("strict", false, MsgFlagStrict)
	cmd.Flags().BoolVar(&noNewline, "no-newline", false, MsgFlagNoNewline)

	return cmd
}

func newCompileCmd(a *app) *cobra.Command {
	var tf templateFlags

	cmd := &cobra.Command{
		Use:     "compile [template]",
		Short:   MsgCompileShort,
		Long:    MsgCompileLong,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, _, err := a.resolveTemplate(&tf, args)
			if err != nil {
				return err
			}
			return a.printer.Print(newCompileResult(t))
		},
	}

	tf.register(cmd, a)
	return cmd
}

func newKeysCmd(a *app) *cobra.Command {
	var tf templateFlags

	cmd := &cobra.Command{
		Use:     "keys [template]",
		Short:   MsgKeysShort,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, _, err := a.resolveTemplate(&tf, args)
			if err != nil {
				return err
			}
			keys := t.Keys()
			if keys == nil {
				keys = []string{}
			}
			return a.printer.Print(&KeysResult{Keys: keys})
		},
	}

	tf.register(cmd, a)
	return cmd
}

func newStyleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "style <style|name>",
		Short:   MsgStyleShort,
		Long:    MsgStyleLong,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.cfg.ResolveStyle(args[0])
			if err != nil {
				return err
			}
			color := a.renderer.ColorProfile() != termenv.Ascii
			return a.printer.Print(newStyleResult(args[0], s, color))
		},
	}
}

func newTemplatesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "templates",
		Short:   MsgTemplatesShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := a.loader.LoadAll(a.projectDir)
			if err != nil {
				return err
			}
			if entries == nil {
				entries = []*source.Entry{}
			}
			return a.printer.Print(&TemplatesResult{Templates: entries})
		},
	}
}

func newGenConfigCmd(a *app) *cobra.Command {
	var (
		current bool
		write   bool
		force   bool
	)

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		GroupID: "config",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cli.genconfig")

			data := []byte(config.GenerateConfigContent())
			if current {
				var err error
				if data, err = config.Generate(a.cfg); err != nil {
					return err
				}
			}

			if !write {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}

			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				path = config.ConfigPath()
			}

			exists, err := afero.Exists(a.fs, path)
			if err != nil {
				return errors.Wrapf(err, errors.ErrFileRead, "failed to check %s", path).
					WithDetail("path", path)
			}
			if exists && !force {
				return errors.Newf(errors.ErrInvalidInput, MsgErrConfigExists, path).
					WithDetail("path", path)
			}

			if err := a.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return errors.Wrapf(err, errors.ErrInternal, "failed to create %s", filepath.Dir(path))
			}
			if err := afero.WriteFile(a.fs, path, data, 0644); err != nil {
				return errors.Wrapf(err, errors.ErrInternal, "failed to write %s", path).
					WithDetail("path", path)
			}

			logger.Info().Str("path", path).Bool("current", current).Msg("Configuration written")
			fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&current, "current", false, MsgFlagCurrent)
	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)

	return cmd
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printer.Print(version.Current())
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		Annotations:           map[string]string{skipSetup: "true"},
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			switch args[0] {
			case "bash":
				err = cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				err = cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				err = cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				err = cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			if err != nil {
				log.Error().Err(err).Str("shell", args[0]).Msg("Failed to generate completion")
			}
			return err
		},
	}
}

// ManHeader is the header of the generated man page.
func ManHeader() *doc.GenManHeader {
	return &doc.GenManHeader{
		Title:   "PROGTMPL",
		Section: "1",
		Source:  logging.AppName + " " + version.Version,
		Manual:  logging.AppName + " manual",
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "man",
		Short:       MsgManShort,
		GroupID:     "misc",
		Hidden:      true,
		Annotations: map[string]string{skipSetup: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return doc.GenMan(cmd.Root(), ManHeader(), cmd.OutOrStdout())
		},
	}
}
