// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Game GameConfig `toml:"game"`
	Log  LogConfig  `toml:"log"`
}

// GameConfig maps game-related settings.
type GameConfig struct {
	Level     *string   `toml:"level"`
	Levels    *[]string `toml:"levels"`
	TimeLimit *int      `toml:"time-limit"`
	Countdown *int      `toml:"countdown"`
	Source    *string   `toml:"source"`
	DataDir   *string   `toml:"data-dir"`
	DataURL   *string   `toml:"data-url"`
	Bank      *string   `toml:"bank"`
	Keyboard  *bool     `toml:"keyboard"`
}

// LogConfig maps debug log settings.
type LogConfig struct {
	File *string `toml:"file"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
