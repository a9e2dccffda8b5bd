package stowsave

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Save a file or directory into a stow package"
	MsgConfigShort     = "Print the effective configuration"
	MsgConfigLong      = "Config prints the configuration stowsave would use, after defaults, the config file, STOWSAVE_* environment variables and command line flags are applied."
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate the man page"

	// Status messages
	MsgDryRunNotice = "\nDRY RUN MODE - No changes were made"

	// Error messages
	MsgErrLoadConfig = "failed to load configuration: %w"
	MsgErrRender     = "failed to render output: %w"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun  = "Preview changes without executing them"
	MsgFlagOutput  = "Output format: text or yaml"
	MsgFlagVerify  = "Verify the backup against the original and the symlink after stowing"
	MsgFlagConfig  = "Read configuration from this file instead of the default location"
	MsgFlagLinker  = "Command used to stow the package (default \"stow\")"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
