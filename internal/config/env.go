package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvSource  = "TAIPU_SOURCE"
	EnvDataDir = "TAIPU_DATA_DIR"
	EnvDataURL = "TAIPU_DATA_URL"
	EnvBank    = "TAIPU_BANK"
)

// LoadDotEnv loads variables from a .env file without overriding the process
// environment. Missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays TAIPU_* environment variables onto the file config.
func ApplyEnv(cfg *FileConfig) {
	overlay := func(name string, target **string) {
		v := strings.TrimSpace(os.Getenv(name))
		if v == "" {
			return
		}
		*target = &v
	}
	overlay(EnvSource, &cfg.Game.Source)
	overlay(EnvDataDir, &cfg.Game.DataDir)
	overlay(EnvDataURL, &cfg.Game.DataURL)
	overlay(EnvBank, &cfg.Game.Bank)
}
