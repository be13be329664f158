// cmd/musichub/commands/migrate.go
package commands

import (
	"github.com/spf13/cobra"

	"github.com/musichub/musichub-backend/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	_, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer database.Close(db)

	return database.RunMigrations(db)
}
