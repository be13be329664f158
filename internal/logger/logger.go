// internal/logger/logger.go
package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/musichub/musichub-backend/internal/config"
)

// Setup configures the standard logrus logger. Unknown levels fall back to info.
func Setup(cfg config.LogConfig) {
	logrus.SetOutput(os.Stdout)

	if strings.EqualFold(cfg.Format, "json") {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logrus.WithField("level", cfg.Level).Warn("Unknown log level, using info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
