package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// NewPingCommand creates the ping command.
func NewPingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check connectivity to the configured database",
		Long: `Open a connection with the resolved profile and report the server
version. Exits non-zero when the database is unreachable or absent.`,
		Example: `  # Ping the default profile
  wxdb ping

  # Ping a specific profile
  wxdb ping -p archive`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPing(cmd)
		},
	}
}

func runPing(cmd *cobra.Command) error {
	start := time.Now()

	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	version, err := cmdCtx.Conn.ServerVersion(cmd.Context())
	if err != nil {
		return fmt.Errorf("server version: %w", err)
	}

	elapsed := time.Since(start).Round(time.Millisecond)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: connected to %q (server version %s) in %s\n",
		driverName(cmdCtx.Profile), cmdCtx.Conn.DatabaseName(), version, elapsed)
	return nil
}
