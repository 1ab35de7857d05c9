// Package cli provides the command-line interface for wxdb administration.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/skyarchive/wxdb/internal/cli/commands"
	"github.com/skyarchive/wxdb/internal/config"
	"github.com/spf13/cobra"

	// Register the storage drivers the CLI can administer.
	_ "github.com/skyarchive/wxdb/pkg/drivers/postgres"
	_ "github.com/skyarchive/wxdb/pkg/drivers/sqlite"
)

var (
	cfgFile     string
	profileFlag string
	logLevel    string
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wxdb",
		Short: "wxdb - weather archive database administration",
		Long: `wxdb administers the relational databases behind a weather archive.

Connections are described by named profiles in wxdb.yaml (overridable with
WXDB_* environment variables and command-line flags). The same commands work
against every registered storage driver.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip profile resolution for help and completion commands
			switch cmd.Name() {
			case "help", "completion", "__complete", "version":
				return nil
			}

			logger, err := newLogger(logLevel)
			if err != nil {
				return err
			}

			f, err := config.Load(cfgFile, "")
			if err != nil {
				return err
			}
			profile, err := f.ResolveWithFlags(profileFlag, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			ctx := commands.WithProfile(cmd.Context(), profile)
			ctx = commands.WithLogger(ctx, logger)
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set version template
	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
Weather archive storage toolkit
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./wxdb.yaml)")
	rootCmd.PersistentFlags().StringVarP(&profileFlag, "profile", "p", "", "Connection profile to use (default: the file's default profile)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug|info|warn|error, empty for silent)")

	// Connection overrides; any of these that is explicitly set wins over
	// the profile and the environment.
	rootCmd.PersistentFlags().String("driver", "", "Storage driver (postgres|sqlite)")
	rootCmd.PersistentFlags().String("host", "", "Database server host")
	rootCmd.PersistentFlags().Int("port", 0, "Database server port")
	rootCmd.PersistentFlags().String("user", "", "Database user")
	rootCmd.PersistentFlags().String("password", "", "Database password")
	rootCmd.PersistentFlags().String("database", "", "Database name")
	rootCmd.PersistentFlags().String("path", "", "Database file path (file-based drivers)")

	// Register completion for log-level flag
	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	// Register completion for driver flag
	_ = rootCmd.RegisterFlagCompletionFunc("driver", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"postgres", "sqlite"}, cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewPingCommand())
	rootCmd.AddCommand(commands.NewCreateDBCommand())
	rootCmd.AddCommand(commands.NewDropDBCommand())
	rootCmd.AddCommand(commands.NewTablesCommand())
	rootCmd.AddCommand(commands.NewReflectCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
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

// newLogger builds a stderr text logger at the requested level. An empty
// level keeps the CLI silent.
func newLogger(level string) (*slog.Logger, error) {
	if level == "" {
		return slog.New(slog.DiscardHandler), nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})), nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for wxdb.

To load completions:

Bash:
  $ source <(wxdb completion bash)

Zsh:
  $ wxdb completion zsh > "${fpath[1]}/_wxdb"

Fish:
  $ wxdb completion fish | source

PowerShell:
  PS> wxdb completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
	return cmd
}
