// filepath: internal/cli/migrate.go
package cli

import (
	"blog/internal/logging"
	"blog/internal/repository"
	"fmt"

	"github.com/spf13/cobra"
)

// newMigrateCmd builds the "migrate" command and its up/down/status subcommands.
func newMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database schema versions. Use subcommands 'up', 'down', or 'status'.`,
	}

	subcommands := []struct {
		use, short string
	}{
		{"up", "Migrate the database to the most recent version"},
		{"down", "Roll back the database by one version"},
		{"status", "Dump the migration status for the current DB"},
	}
	for _, sc := range subcommands {
		command := sc.use
		migrateCmd.AddCommand(&cobra.Command{
			Use:   sc.use,
			Short: sc.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMigration(command)
			},
		})
	}
	return migrateCmd
}

// runMigration relies on the root command's PersistentPreRunE having loaded cfg.
func runMigration(command string) error {
	repo, err := repository.NewRepository(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer repo.Close()

	logging.Log.Infof("Running migration command: %s", command)
	if err := repo.RunMigration(command); err != nil {
		return err
	}

	logging.Log.Info("Migration operation completed successfully.")
	return nil
}
