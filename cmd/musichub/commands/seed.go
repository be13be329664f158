// cmd/musichub/commands/seed.go
package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/musichub/musichub-backend/internal/database"
)

var (
	adminUsername string
	adminEmail    string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the genre catalogue and the admin account",
	Long: `Seed inserts any missing genres. When ADMIN_PASSWORD is set it also creates the admin
account, which cannot be created through registration.

Running it again is harmless.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&adminUsername, "admin-username", "admin", "Username of the admin account")
	seedCmd.Flags().StringVar(&adminEmail, "admin-email", "admin@musichub.local", "E-mail of the admin account")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	_, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.RunMigrations(db); err != nil {
		return err
	}

	return database.SeedInitialData(db, database.SeedOptions{
		AdminUsername: adminUsername,
		AdminEmail:    adminEmail,
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	})
}
