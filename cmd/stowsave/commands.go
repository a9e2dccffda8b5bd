package stowsave

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/stowsave/internal/version"
	"github.com/arthur-debert/stowsave/pkg/commands/save"
	"github.com/arthur-debert/stowsave/pkg/config"
	"github.com/arthur-debert/stowsave/pkg/linker"
	"github.com/arthur-debert/stowsave/pkg/logging"
	"github.com/arthur-debert/stowsave/pkg/output/styles"
	"github.com/arthur-debert/stowsave/pkg/style"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// rootFlags holds the values of the global flags
type rootFlags struct {
	verbosity  int
	dryRun     bool
	output     string
	verify     bool
	configFile string
	linker     string
}

// overrides turns explicitly set flags into configuration keys. Flags left at
// their defaults do not mask values from the config file or environment.
func (f *rootFlags) overrides(cmd *cobra.Command) map[string]interface{} {
	o := map[string]interface{}{}
	if cmd.Flags().Changed("linker") {
		o["linker.command"] = f.linker
	}
	if cmd.Flags().Changed("verify") {
		o["backup.verify"] = f.verify
		o["save.verify_link"] = f.verify
	}
	return o
}

func (f *rootFlags) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: f.configFile,
		Overrides:  f.overrides(cmd),
	})
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	return cfg, nil
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:     "stowsave <path-to-save> <package-dir>",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.ExactArgs(2),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(flags.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSave(cmd, flags, args[0], args[1])
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&flags.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&flags.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&flags.linker, "linker", "", MsgFlagLinker)
	rootCmd.PersistentFlags().BoolVar(&flags.verify, "verify", false, MsgFlagVerify)
	rootCmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.Flags().StringVarP(&flags.output, "output", "o", "text", MsgFlagOutput)

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)
	rootCmd.SetVersionTemplate(fmt.Sprintf("stowsave %s (commit %s, built %s)\n",
		version.Version, version.Commit, version.Date))

	rootCmd.AddCommand(newConfigCmd(flags))
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	return rootCmd
}

func runSave(cmd *cobra.Command, flags *rootFlags, savePath, packageDir string) error {
	format, err := style.ParseFormat(flags.output)
	if err != nil {
		return err
	}

	cfg, err := flags.loadConfig(cmd)
	if err != nil {
		return err
	}

	result, err := save.SaveFile(save.SaveOptions{
		SavePath:     savePath,
		PackageDir:   packageDir,
		BackupSuffix: cfg.Backup.Suffix,
		DryRun:       flags.dryRun,
		VerifyBackup: cfg.Backup.Verify,
		VerifyLink:   cfg.Save.VerifyLink,
		Linker:       linker.NewExec(cfg.Linker.Command, cfg.Linker.Args),
	})

	out := cmd.OutOrStdout()
	renderer := style.NewRenderer(resolveFormat(format, out))

	if err != nil {
		// Show how far a failed execution got before reporting the error
		if result != nil && len(result.Results) > 0 {
			fmt.Fprintln(out, renderer.RenderResults(result.Results))
		}
		return err
	}

	if format == style.FormatYAML || flags.dryRun {
		rendered, err := renderer.RenderPlan(result.Plan)
		if err != nil {
			return fmt.Errorf(MsgErrRender, err)
		}
		fmt.Fprintln(out, rendered)
		if format == style.FormatYAML {
			return nil
		}
	}

	if flags.dryRun {
		fmt.Fprintln(out, MsgDryRunNotice)
		return nil
	}

	if flags.verbosity > 0 {
		fmt.Fprintln(out, renderer.RenderResults(result.Results))
	}
	fmt.Fprintln(out, styles.Render("Success", save.SuccessMessage))
	return nil
}

// resolveFormat picks a concrete format; writers that are not files never
// get terminal styling.
func resolveFormat(format style.Format, out io.Writer) style.Format {
	if f, ok := out.(*os.File); ok {
		return format.Resolve(f)
	}
	if format == style.FormatAuto {
		return style.FormatText
	}
	return format
}

func newConfigCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig(cmd)
			if err != nil {
				return err
			}
			rendered, err := cfg.TOML()
			if err != nil {
				return fmt.Errorf(MsgErrRender, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), rendered)
			return nil
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		Args:    cobra.NoArgs,
		Hidden:  true,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			header := &doc.GenManHeader{
				Title:   "STOWSAVE",
				Section: "1",
				Source:  "stowsave " + version.Version,
				Manual:  "stowsave manual",
			}
			return doc.GenMan(cmd.Root(), header, cmd.OutOrStdout())
		},
	}
}
