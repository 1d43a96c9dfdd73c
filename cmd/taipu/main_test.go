package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/taipu/internal/config"
	"github.com/verte-zerg/taipu/internal/model"
	"github.com/verte-zerg/taipu/internal/questions"
)

func validConfig() model.Config {
	return model.Config{
		Level:     "1",
		Levels:    []string{"1", "2"},
		TimeLimit: time.Minute,
		Countdown: 3,
		Source:    sourceEmbed,
	}
}

func TestValidateConfig(t *testing.T) {
	require.NoError(t, validateConfig(validConfig()))

	cases := map[string]func(*model.Config){
		"--time-limit": func(c *model.Config) { c.TimeLimit = 0 },
		"--countdown":  func(c *model.Config) { c.Countdown = -1 },
		"--levels":     func(c *model.Config) { c.Levels = nil },
		"--level":      func(c *model.Config) { c.Level = "" },
		"--source":     func(c *model.Config) { c.Source = "ftp" },
		"--data-url":   func(c *model.Config) { c.Source = sourceHTTP },
	}
	for flag, mutate := range cases {
		cfg := validConfig()
		mutate(&cfg)
		err := validateConfig(cfg)
		require.Error(t, err, flag)
		assert.True(t, strings.HasPrefix(err.Error(), flag), "%s: %v", flag, err)
	}
}

func TestConfigTemplateDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644))
	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Nil(t, cfg.Game.Level)
}

func TestOpenSource(t *testing.T) {
	cfg := validConfig()
	src, closeSrc, err := openSource(cfg)
	require.NoError(t, err)
	closeSrc()
	_, ok := src.(questions.FSSource)
	assert.True(t, ok)

	cfg.Source = sourceBank
	cfg.BankPath = filepath.Join(t.TempDir(), "bank.db")
	src, closeSrc, err = openSource(cfg)
	require.NoError(t, err)
	defer closeSrc()
	_, ok = src.(questions.Lister)
	assert.True(t, ok)

	cfg.Source = "ftp"
	_, _, err = openSource(cfg)
	require.Error(t, err)
}

func TestSummarizeLevels(t *testing.T) {
	src := questions.FSSource{FS: fstest.MapFS{
		"questions_level1.json": {Data: []byte(`["neko", "Inu"]`)},
		"questions_level2.json": {Data: []byte(`not json`)},
	}}
	sums, err := summarizeLevels(context.Background(), src, nil)
	require.NoError(t, err)
	assert.Equal(t, []model.LevelSummary{{Level: "1", Phrases: 2, Chars: 7}}, sums)
}

func TestSummarizeLevelsWithoutLister(t *testing.T) {
	src := questions.NewHTTPSource("http://127.0.0.1:1")
	sums, err := summarizeLevels(context.Background(), src, []string{"1"})
	require.NoError(t, err)
	assert.Empty(t, sums)
}

func TestSetupLogging(t *testing.T) {
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
	})
	closeLog, err := setupLogging("")
	require.NoError(t, err)
	closeLog()

	path := filepath.Join(t.TempDir(), "logs", "debug.log")
	closeLog, err = setupLogging(path)
	require.NoError(t, err)
	closeLog()
	_, err = os.Stat(path)
	assert.NoError(t, err)
}
