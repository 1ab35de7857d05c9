package commands

import (
	"errors"
	"fmt"

	"github.com/skyarchive/wxdb/internal/config"
	"github.com/skyarchive/wxdb/pkg/storage"
	"github.com/spf13/cobra"
)

// NewCreateDBCommand creates the createdb command.
func NewCreateDBCommand() *cobra.Command {
	var ifNotExists bool

	cmd := &cobra.Command{
		Use:   "createdb",
		Short: "Create the database named by the profile",
		Long: `Create the database the resolved profile points at. The command runs
as an administrative operation outside any transaction; the target database
must not already exist unless --if-not-exists is given.`,
		Example: `  # Create the archive database
  wxdb createdb -p archive

  # Idempotent form for provisioning scripts
  wxdb createdb -p archive --if-not-exists`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, drv, err := NewDriverContext(cmd)
			if err != nil {
				return err
			}

			err = drv.CreateDatabase(cmd.Context(), profile.StorageConfig())
			if err != nil {
				if ifNotExists && errors.Is(err, storage.ErrDatabaseExists) {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Database %q already exists, nothing to do\n", databaseLabel(profile))
					return nil
				}
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created database %q\n", databaseLabel(profile))
			return nil
		},
	}

	cmd.Flags().BoolVar(&ifNotExists, "if-not-exists", false, "Succeed silently when the database already exists")
	return cmd
}

// NewDropDBCommand creates the dropdb command.
func NewDropDBCommand() *cobra.Command {
	var ifExists bool
	var force bool

	cmd := &cobra.Command{
		Use:   "dropdb",
		Short: "Drop the database named by the profile",
		Long: `Drop the database the resolved profile points at, with all its data.
Requires --force as a guard against accidental invocation.`,
		Example: `  # Drop the archive database
  wxdb dropdb -p archive --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, drv, err := NewDriverContext(cmd)
			if err != nil {
				return err
			}

			if !force {
				return fmt.Errorf("dropping %q discards all archived data; re-run with --force to confirm", databaseLabel(profile))
			}

			err = drv.DropDatabase(cmd.Context(), profile.StorageConfig())
			if err != nil {
				if ifExists && errors.Is(err, storage.ErrNoSuchDatabase) {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Database %q does not exist, nothing to do\n", databaseLabel(profile))
					return nil
				}
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Dropped database %q\n", databaseLabel(profile))
			return nil
		},
	}

	cmd.Flags().BoolVar(&ifExists, "if-exists", false, "Succeed silently when the database does not exist")
	cmd.Flags().BoolVar(&force, "force", false, "Confirm the drop")
	return cmd
}

// databaseLabel names the target database for messages: the database name
// for server engines, the file path for file-based ones.
func databaseLabel(p *config.Profile) string {
	if p.Database != "" {
		return p.Database
	}
	return p.Path
}
