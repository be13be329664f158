// internal/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.AWS.S3Enabled())
}

func TestLoadParsesOriginList(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Environment: "production",
			Database:    DatabaseConfig{Driver: "postgres", Password: "secret"},
			JWT:         JWTConfig{SecretKey: "real-secret"},
			RateLimit:   RateLimitConfig{RequestsPerSecond: 5, Burst: 10},
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("default secret in production", func(t *testing.T) {
		cfg := base()
		cfg.JWT.SecretKey = defaultJWTSecret
		assert.Error(t, cfg.Validate())
	})

	t.Run("sqlite needs no password", func(t *testing.T) {
		cfg := base()
		cfg.Database = DatabaseConfig{Driver: "sqlite", Database: "musichub.db"}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := base()
		cfg.Database.Driver = "oracle"
		assert.Error(t, cfg.Validate())
	})
}

func TestDSN(t *testing.T) {
	pg := DatabaseConfig{Driver: "postgres", Host: "db", Port: "5432", User: "u", Password: "p", Database: "musichub", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=musichub sslmode=disable", pg.DSN())

	my := DatabaseConfig{Driver: "mysql", Host: "db", Port: "3306", User: "u", Password: "p", Database: "musichub"}
	assert.Equal(t, "u:p@tcp(db:3306)/musichub?charset=utf8mb4&parseTime=True&loc=UTC", my.DSN())

	lite := DatabaseConfig{Driver: "sqlite", Database: ":memory:"}
	assert.Equal(t, ":memory:", lite.DSN())
}
