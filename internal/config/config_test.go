package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.Game.Level != nil {
		t.Fatalf("expected empty config")
	}
}

func TestLoadConfigGameSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `[game]
level = "2"
levels = ["1", "2"]
time-limit = 30
keyboard = false

[log]
file = "/tmp/taipu.log"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Game.Level == nil || *cfg.Game.Level != "2" {
		t.Fatalf("unexpected level: %v", cfg.Game.Level)
	}
	if cfg.Game.Levels == nil || len(*cfg.Game.Levels) != 2 {
		t.Fatalf("unexpected levels: %v", cfg.Game.Levels)
	}
	if cfg.Game.TimeLimit == nil || *cfg.Game.TimeLimit != 30 {
		t.Fatalf("unexpected time limit: %v", cfg.Game.TimeLimit)
	}
	if cfg.Game.Keyboard == nil || *cfg.Game.Keyboard {
		t.Fatalf("expected keyboard disabled")
	}
	if cfg.Log.File == nil || *cfg.Log.File != "/tmp/taipu.log" {
		t.Fatalf("unexpected log file: %v", cfg.Log.File)
	}
}

func TestLoadConfigRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[game\nlevel="), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestApplyEnvOverridesFile(t *testing.T) {
	t.Setenv(EnvSource, "http")
	t.Setenv(EnvDataURL, "https://example.test/data")
	t.Setenv(EnvDataDir, "")

	dir := "/srv/questions"
	cfg := FileConfig{Game: GameConfig{DataDir: &dir}}
	ApplyEnv(&cfg)
	if cfg.Game.Source == nil || *cfg.Game.Source != "http" {
		t.Fatalf("expected source from env, got %v", cfg.Game.Source)
	}
	if cfg.Game.DataURL == nil || *cfg.Game.DataURL != "https://example.test/data" {
		t.Fatalf("expected data url from env, got %v", cfg.Game.DataURL)
	}
	if *cfg.Game.DataDir != dir {
		t.Fatalf("empty env value must not override file value")
	}
}

func TestLoadDotEnv(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Fatalf("missing .env must not fail: %v", err)
	}
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("TAIPU_BANK=/tmp/bank.db\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv(EnvBank, "")
	if err := os.Unsetenv(EnvBank); err != nil {
		t.Fatalf("unset: %v", err)
	}
	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("load .env: %v", err)
	}
	if got := os.Getenv(EnvBank); got != "/tmp/bank.db" {
		t.Fatalf("expected bank from .env, got %q", got)
	}
}
