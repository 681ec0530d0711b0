package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/rovr/internal/logfields"
)

// EnvFiles are loaded from the source directory, in order, before the config
// file is expanded. Variables already set in the process environment win.
var EnvFiles = []string{".env", ".env.local"}

func loadEnvFiles(dir string, logger *slog.Logger) {
	for _, name := range EnvFiles {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			logger.Warn("Failed to load env file", logfields.Path(p), logfields.Error(err))
			continue
		}
		logger.Debug("Loaded environment variables", logfields.Path(p))
	}
}
