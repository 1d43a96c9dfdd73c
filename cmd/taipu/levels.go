package main

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/taipu/internal/config"
	"github.com/verte-zerg/taipu/internal/model"
	"github.com/verte-zerg/taipu/internal/questions"
	"github.com/verte-zerg/taipu/internal/stats"
	"github.com/verte-zerg/taipu/internal/store"
	"github.com/verte-zerg/taipu/internal/wordlist"
)

var (
	bankReplace bool
	bankFilter  string
)

func newLevelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List levels available from the question source",
		Args:  cobra.NoArgs,
		RunE:  runLevelsCmd,
	}
}

func runLevelsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	src, closeSrc, err := openSource(cfg)
	if err != nil {
		return err
	}
	defer closeSrc()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	summaries, err := summarizeLevels(ctx, src, cfg.Levels)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		logErrf("No levels found for source %s\n", cfg.Source)
		return fmt.Errorf("no levels found")
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), stats.LevelTable(summaries, cfg.Level)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// summarizeLevels counts phrases per level. Sources that cannot enumerate
// their levels are probed with fallback.
func summarizeLevels(ctx context.Context, src questions.Source, fallback []string) ([]model.LevelSummary, error) {
	levels := fallback
	if lister, ok := src.(questions.Lister); ok {
		listed, err := lister.Levels(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list levels: %w", err)
		}
		levels = listed
	}
	summaries := make([]model.LevelSummary, 0, len(levels))
	for _, level := range levels {
		raw, err := src.Fetch(ctx, level)
		if err != nil {
			logErrf("skipping level %s: %v\n", level, err)
			continue
		}
		sum := model.LevelSummary{Level: level, Phrases: len(raw)}
		for _, p := range raw {
			sum.Chars += model.NewPhrase(p).Len()
		}
		summaries = append(summaries, sum)
	}
	return summaries, nil
}

func newBankCmd() *cobra.Command {
	bankCmd := &cobra.Command{
		Use:   "bank",
		Short: "Manage the SQLite question bank",
	}

	importCmd := &cobra.Command{
		Use:   "import <level> <file>",
		Short: "Import phrases from a .json array or a text file with one phrase per line",
		Args:  cobra.ExactArgs(2),
		RunE:  runBankImportCmd,
	}
	importCmd.Flags().BoolVar(&bankReplace, "replace", false, "replace existing phrases of the level")
	importCmd.Flags().StringVar(&bankFilter, "filter", "", "drop phrases not matching a filter (romaji)")

	deleteCmd := &cobra.Command{
		Use:   "delete <level>",
		Short: "Delete every phrase of a level",
		Args:  cobra.ExactArgs(1),
		RunE:  runBankDeleteCmd,
	}

	bankCmd.AddCommand(importCmd, deleteCmd)
	return bankCmd
}

func openBank(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	path := cfg.BankPath
	if path == "" {
		path = config.DefaultBankPath()
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open bank: %w", err)
	}
	return st, nil
}

func runBankImportCmd(cmd *cobra.Command, args []string) error {
	level, path := args[0], args[1]
	phrases, err := wordlist.LoadPhrases(path)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	phrases, rejected := wordlist.Apply(phrases, wordlist.FilterFor(bankFilter))
	if rejected > 0 {
		logErrf("Skipped %s phrases rejected by filter %q\n", humanize.Comma(int64(rejected)), bankFilter)
	}
	if len(phrases) == 0 {
		return fmt.Errorf("no phrases left to import")
	}

	st, err := openBank(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close bank: %v\n", cerr)
		}
	}()

	total, err := st.Import(cmd.Context(), level, phrases, bankReplace)
	if err != nil {
		return fmt.Errorf("failed to import level %s: %w", level, err)
	}
	logErrf("Imported %s phrases into level %s (%s total)\n",
		humanize.Comma(int64(len(phrases))), level, humanize.Comma(int64(total)))
	return nil
}

func runBankDeleteCmd(cmd *cobra.Command, args []string) error {
	st, err := openBank(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close bank: %v\n", cerr)
		}
	}()

	removed, err := st.Delete(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to delete level %s: %w", args[0], err)
	}
	if removed == 0 {
		logErrln("Nothing to delete")
		return nil
	}
	logErrf("Deleted %s phrases from level %s\n", humanize.Comma(removed), args[0])
	return nil
}
