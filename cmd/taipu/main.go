// Package main provides the CLI entrypoint for taipu.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/taipu/internal/config"
	"github.com/verte-zerg/taipu/internal/model"
	"github.com/verte-zerg/taipu/internal/questions"
	"github.com/verte-zerg/taipu/internal/round"
	"github.com/verte-zerg/taipu/internal/store"
	"github.com/verte-zerg/taipu/internal/tui"
)

// Question sources.
const (
	sourceEmbed = "embed"
	sourceDir   = "dir"
	sourceHTTP  = "http"
	sourceBank  = "bank"
)

const (
	defaultTimeLimit = 60
	defaultCountdown = 3
)

var defaultLevels = []string{"1", "2", "3"}

var (
	gameLevel     string
	gameLevels    []string
	gameTimeLimit int
	gameCountdown int
	gameSource    string
	gameDataDir   string
	gameDataURL   string
	gameBank      string
	gameKeyboard  bool
	gameLogFile   string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "taipu",
		Short:         "Romaji typing game",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runGameCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&gameSource, "source", sourceEmbed, "question source: embed, dir, http or bank")
	flags.StringVar(&gameDataDir, "data-dir", config.DefaultDataDir(), "directory with questions_level<N>.json files")
	flags.StringVar(&gameDataURL, "data-url", "", "base URL serving questions_level<N>.json files")
	flags.StringVar(&gameBank, "bank", config.DefaultBankPath(), "SQLite question bank path")
	flags.StringVar(&gameLevel, "level", model.DefaultLevel, "difficulty level selected at start")

	rootCmd.Flags().StringSliceVar(&gameLevels, "levels", defaultLevels, "levels offered by the difficulty selector")
	rootCmd.Flags().IntVar(&gameTimeLimit, "time-limit", defaultTimeLimit, "round time limit in seconds")
	rootCmd.Flags().IntVar(&gameCountdown, "countdown", defaultCountdown, "countdown steps before typing starts")
	rootCmd.Flags().BoolVar(&gameKeyboard, "keyboard", true, "show the on-screen keyboard")
	rootCmd.Flags().StringVar(&gameLogFile, "log", "", "write debug log to this file")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLevelsCmd())
	rootCmd.AddCommand(newBankCmd())

	return rootCmd
}

// resolveConfig layers .env, the config file and flags, in increasing priority.
func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		logErrf("%v\n", err)
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	config.ApplyEnv(&fileCfg)

	applyStringConfig(cmd, "level", &gameLevel, fileCfg.Game.Level)
	applyStringSliceConfig(cmd, "levels", &gameLevels, fileCfg.Game.Levels)
	applyIntConfig(cmd, "time-limit", &gameTimeLimit, fileCfg.Game.TimeLimit)
	applyIntConfig(cmd, "countdown", &gameCountdown, fileCfg.Game.Countdown)
	applyStringConfig(cmd, "source", &gameSource, fileCfg.Game.Source)
	applyStringConfig(cmd, "data-dir", &gameDataDir, fileCfg.Game.DataDir)
	applyStringConfig(cmd, "data-url", &gameDataURL, fileCfg.Game.DataURL)
	applyStringConfig(cmd, "bank", &gameBank, fileCfg.Game.Bank)
	applyBoolConfig(cmd, "keyboard", &gameKeyboard, fileCfg.Game.Keyboard)
	applyStringConfig(cmd, "log", &gameLogFile, fileCfg.Log.File)

	cfg := model.Config{
		Level:     strings.TrimSpace(gameLevel),
		Levels:    trimAll(gameLevels),
		TimeLimit: time.Duration(gameTimeLimit) * time.Second,
		Countdown: gameCountdown,
		Source:    strings.ToLower(strings.TrimSpace(gameSource)),
		DataDir:   gameDataDir,
		DataURL:   strings.TrimSpace(gameDataURL),
		BankPath:  gameBank,
		Keyboard:  gameKeyboard,
		LogFile:   gameLogFile,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func runGameCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("taipu needs an interactive terminal")
	}

	closeLog, err := setupLogging(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	src, closeSrc, err := openSource(cfg)
	if err != nil {
		return err
	}
	defer closeSrc()

	loader := questions.NewLoader(src, model.DefaultLevel)
	ctrl := round.NewController(loader, questions.NewShuffler(), round.Config{
		TimeLimit: cfg.TimeLimit,
		Countdown: cfg.Countdown,
	})
	log.Printf("starting with source=%s level=%s levels=%v", cfg.Source, cfg.Level, cfg.Levels)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := tui.NewModel(ctx, ctrl, cfg)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// setupLogging routes the standard logger to path, or discards it so the
// alternate screen stays clean.
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := tea.LogToFile(path, "taipu")
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close of the debug log.
			_ = cerr
		}
	}, nil
}

// openSource builds the question source selected by cfg.Source.
func openSource(cfg model.Config) (questions.Source, func(), error) {
	noop := func() {}
	switch cfg.Source {
	case "", sourceEmbed:
		return questions.Embedded(), noop, nil
	case sourceDir:
		return questions.FSSource{FS: os.DirFS(cfg.DataDir)}, noop, nil
	case sourceHTTP:
		return questions.NewHTTPSource(cfg.DataURL), noop, nil
	case sourceBank:
		st, err := store.Open(cfg.BankPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open bank: %w", err)
		}
		return st, func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close bank: %v\n", cerr)
			}
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown source %q", cfg.Source)
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyStringSliceConfig(cmd *cobra.Command, name string, target, value *[]string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = append([]string(nil), (*value)...)
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# taipu configuration
# Uncomment a value to enable it. CLI flags and TAIPU_* variables override config values.

[game]
# level = %q               # Level selected at start
# levels = [%s]     # Levels offered by the difficulty selector
# time-limit = %d            # Round time limit in seconds
# countdown = %d              # Countdown steps before typing starts
# source = %q           # Question source: embed, dir, http or bank
# data-dir = %q
# data-url = ""              # Base URL serving questions_level<N>.json
# bank = %q
# keyboard = true            # Show the on-screen keyboard

[log]
# file = %q
`,
		model.DefaultLevel,
		quoteAll(defaultLevels),
		defaultTimeLimit,
		defaultCountdown,
		sourceEmbed,
		config.DefaultDataDir(),
		config.DefaultBankPath(),
		config.DefaultLogPath(),
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.TimeLimit <= 0 {
		return fmt.Errorf("--time-limit must be > 0")
	}
	if cfg.Countdown < 0 {
		return fmt.Errorf("--countdown must be >= 0")
	}
	if len(cfg.Levels) == 0 {
		return fmt.Errorf("--levels must not be empty")
	}
	for _, l := range cfg.Levels {
		if l == "" {
			return fmt.Errorf("--levels must not contain empty values")
		}
	}
	if cfg.Level == "" {
		return fmt.Errorf("--level must not be empty")
	}
	switch cfg.Source {
	case sourceEmbed, sourceDir, sourceBank:
	case sourceHTTP:
		if cfg.DataURL == "" {
			return fmt.Errorf("--data-url must be set for the http source")
		}
	default:
		return fmt.Errorf("--source must be one of embed, dir, http, bank")
	}
	if cfg.Source == sourceDir && cfg.DataDir == "" {
		return fmt.Errorf("--data-dir must be set for the dir source")
	}
	if cfg.Source == sourceBank && cfg.BankPath == "" {
		return fmt.Errorf("--bank must be set for the bank source")
	}
	return nil
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.TrimSpace(v))
	}
	return out
}

func quoteAll(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return strings.Join(quoted, ", ")
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
