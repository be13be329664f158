// internal/database/seed.go
package database

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/musichub/musichub-backend/internal/domain"
	"github.com/musichub/musichub-backend/internal/models"
)

//go:embed seeds/genres.yaml
var genresYAML []byte

type genreSeed struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type seedFile struct {
	Genres []genreSeed `yaml:"genres"`
}

type SeedOptions struct {
	AdminUsername string
	AdminEmail    string
	AdminPassword string // admin is skipped when empty
}

func loadGenreSeeds(raw []byte) ([]genreSeed, error) {
	var file seedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse genre seeds: %w", err)
	}
	for i, g := range file.Genres {
		if g.Name == "" {
			return nil, fmt.Errorf("genre seed %d has no name", i)
		}
	}
	return file.Genres, nil
}

// SeedInitialData inserts missing genres and, when a password is given, the admin account.
// It is safe to run repeatedly.
func SeedInitialData(db *gorm.DB, opts SeedOptions) error {
	logrus.Info("Seeding initial data...")

	genres, err := loadGenreSeeds(genresYAML)
	if err != nil {
		return err
	}

	created := 0
	for _, g := range genres {
		var existing models.Genre
		err := db.Where("name = ?", g.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to look up genre %s: %w", g.Name, err)
		}
		if err := db.Create(&models.Genre{Name: g.Name, Description: g.Description}).Error; err != nil {
			return fmt.Errorf("failed to create genre %s: %w", g.Name, err)
		}
		created++
	}
	logrus.WithField("created", created).Info("Genres seeded")

	if opts.AdminPassword != "" {
		if err := seedAdmin(db, opts); err != nil {
			return err
		}
	}

	logrus.Info("Initial data seeding completed")
	return nil
}

func seedAdmin(db *gorm.DB, opts SeedOptions) error {
	var adminCount int64
	if err := db.Model(&models.User{}).Where("role = ?", domain.RoleAdmin).Count(&adminCount).Error; err != nil {
		return fmt.Errorf("failed to count admins: %w", err)
	}
	if adminCount > 0 {
		return nil
	}

	admin := &models.User{
		Username: opts.AdminUsername,
		Email:    opts.AdminEmail,
		Role:     domain.RoleAdmin,
	}
	if admin.Username == "" {
		admin.Username = "admin"
	}
	if admin.Email == "" {
		admin.Email = "admin@musichub.local"
	}

	if err := admin.SetPassword(opts.AdminPassword); err != nil {
		return fmt.Errorf("failed to set admin password: %w", err)
	}
	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logrus.WithField("username", admin.Username).Info("Default admin user created successfully")
	return nil
}
