// cmd/musichub/commands/root.go
package commands

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/musichub/musichub-backend/internal/config"
	"github.com/musichub/musichub-backend/internal/database"
	"github.com/musichub/musichub-backend/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "musichub",
	Short: "MusicHub - music collaboration platform backend",
	Long: `MusicHub serves the HTTP API for artists, producers, listeners and label managers.

Configuration is read from the environment and an optional .env file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command; errors are logged here and reported through the exit code.
func Execute() error {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Error("Command failed")
		return err
	}
	return nil
}

func SetVersionInfo(v, c, d string) {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

// bootstrap loads configuration, configures logging and opens the database.
func bootstrap() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Setup(cfg.Log)

	db, err := database.Initialize(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}
