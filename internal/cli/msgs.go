package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort       = "Compile and render terminal templates"
	MsgRenderShort     = "Render a template with key=value pairs"
	MsgCompileShort    = "Show the parts of a compiled template"
	MsgKeysShort       = "List the keys a template uses"
	MsgStyleShort      = "Decode a dotted style and preview it"
	MsgTemplatesShort  = "List named templates"
	MsgGenConfigShort  = "Generate a configuration file"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man page"

	// Status messages
	MsgNoTemplates   = "No templates found."
	MsgConfigWritten = "Wrote configuration to %s\n"

	// Error messages
	MsgErrNoTemplate   = "no template given: pass one as an argument, or use --name or --file"
	MsgErrBothSources  = "--name and --file cannot be used together"
	MsgErrConfigExists = "configuration file %s already exists (use --force to overwrite)"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig    = "Config file (default $XDG_CONFIG_HOME/progtmpl/config.toml)"
	MsgFlagFormat    = "Output format: text, json, yaml, toml or table"
	MsgFlagColor     = "Color mode: auto, always or never"
	MsgFlagProject   = "Project directory searched for .progtmpl/templates (default current directory)"
	MsgFlagName      = "Use the named template"
	MsgFlagFile      = "Read the template from a file"
	MsgFlagAlt       = "Use alternate styles"
	MsgFlagStrict    = "Fail when a key has no value"
	MsgFlagNoNewline = "Do not print a trailing newline"
	MsgFlagWrite     = "Write the file instead of printing it"
	MsgFlagForce     = "Overwrite an existing file"
	MsgFlagCurrent   = "Print the effective configuration"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/render-long.txt
	msgRenderLongRaw string
	MsgRenderLong    = strings.TrimSpace(msgRenderLongRaw)

	//go:embed msgs/render-example.txt
	msgRenderExampleRaw string
	MsgRenderExample    = strings.TrimRight(msgRenderExampleRaw, "\n")

	//go:embed msgs/compile-long.txt
	msgCompileLongRaw string
	MsgCompileLong    = strings.TrimSpace(msgCompileLongRaw)

	//go:embed msgs/style-long.txt
	msgStyleLongRaw string
	MsgStyleLong    = strings.TrimSpace(msgStyleLongRaw)

	//go:embed msgs/genconfig-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)

var (
	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
