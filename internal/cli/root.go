// Package cli provides the command-line interface for unitconv.
package cli

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/unitconv/internal/cli/commands"
	"github.com/leapstack-labs/unitconv/internal/cli/config"
	"github.com/leapstack-labs/unitconv/internal/cli/output"
	"github.com/leapstack-labs/unitconv/pkg/units"
	"github.com/spf13/cobra"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "unitconv",
		Short: "unitconv - Unit converter",
		Long: `unitconv converts values between units of the same physical quantity:
length, mass, time, electric current, temperature, luminous intensity and
amount of substance.

Conversions can be run one at a time, interactively in a REPL or through a
small HTTP API. Every conversion is kept in a local history that can be
listed, cleared and exported.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			// cmd.Flags() holds the local flags plus the inherited persistent ones
			cfg, err := config.LoadConfig(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			logger := config.NewLogger(cfg.Verbose, cmd.ErrOrStderr())
			cmd.SetContext(config.WithLogger(cmd.Context(), logger))

			if cfg.Verbose {
				if configFile := config.GetConfigFileUsed(); configFile != "" {
					fmt.Fprintf(cmd.ErrOrStderr(), "Using config file: %s\n", configFile)
				}
				logger.Debug("configuration loaded",
					"history", cfg.HistoryPath,
					"output", cfg.OutputFormat,
					"rounding", cfg.Rounding.String(),
					"precision", cfg.Precision)
			}

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
Unit converter built with Go
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./unitconv.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (auto|text|markdown|json)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().String("theme", "", "Color theme (light|dark)")
	rootCmd.PersistentFlags().String("history", "", "Path to the history database")
	rootCmd.PersistentFlags().String("rounding", "", "Rounding policy (affine|all|none)")
	rootCmd.PersistentFlags().Int("precision", config.DefaultPrecision, "Decimal places used when rounding")

	_ = rootCmd.RegisterFlagCompletionFunc("output", fixedCompletion(
		string(output.ModeAuto), string(output.ModeText), string(output.ModeMarkdown), string(output.ModeJSON)))
	_ = rootCmd.RegisterFlagCompletionFunc("theme", fixedCompletion(output.ThemeLight, output.ThemeDark))
	_ = rootCmd.RegisterFlagCompletionFunc("rounding", fixedCompletion(
		units.RoundAffine.String(), units.RoundAll.String(), units.RoundNone.String()))

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(commands.BuildInfo{
		Version:   Version,
		BuildDate: BuildDate,
		GitCommit: GitCommit,
	}))
	rootCmd.AddCommand(commands.NewConvertCommand())
	rootCmd.AddCommand(commands.NewUnitsCommand())
	rootCmd.AddCommand(commands.NewQuantitiesCommand())
	rootCmd.AddCommand(commands.NewHistoryCommand())
	rootCmd.AddCommand(commands.NewREPLCommand())
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewInitCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

func fixedCompletion(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for unitconv.

To load completions:

Bash:
  $ source <(unitconv completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ unitconv completion bash > /etc/bash_completion.d/unitconv
  # macOS:
  $ unitconv completion bash > $(brew --prefix)/etc/bash_completion.d/unitconv

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ unitconv completion zsh > "${fpath[1]}/_unitconv"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ unitconv completion fish | source

  # To load completions for each session, execute once:
  $ unitconv completion fish > ~/.config/fish/completions/unitconv.fish

PowerShell:
  PS> unitconv completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> unitconv completion powershell > unitconv.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
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
	return cmd
}
