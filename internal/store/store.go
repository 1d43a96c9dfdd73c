// Package store handles the SQLite question bank.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/verte-zerg/taipu/internal/model"
	"github.com/verte-zerg/taipu/internal/questions"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for imported question sets.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS phrases (
			level TEXT NOT NULL,
			position INTEGER NOT NULL,
			text TEXT NOT NULL,
			PRIMARY KEY (level, position)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_phrases_level ON phrases(level);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Import stores phrases for level after the existing ones, or in place of
// them when replace is set. It returns the number of phrases in the level.
func (s *Store) Import(ctx context.Context, level string, phrases []string, replace bool) (n int, err error) {
	if level == "" {
		return 0, fmt.Errorf("level is empty")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if replace {
		if _, err = tx.ExecContext(ctx, `DELETE FROM phrases WHERE level = ?`, level); err != nil {
			return 0, err
		}
	}
	var next int
	if err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position) + 1, 0) FROM phrases WHERE level = ?`, level,
	).Scan(&next); err != nil {
		return 0, err
	}

	if len(phrases) > 0 {
		stmt, perr := tx.PrepareContext(ctx, `INSERT INTO phrases (level, position, text) VALUES (?, ?, ?)`)
		if perr != nil {
			err = perr
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for i, p := range phrases {
			if _, err = stmt.ExecContext(ctx, level, next+i, p); err != nil {
				return 0, err
			}
		}
	}

	if err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM phrases WHERE level = ?`, level).Scan(&n); err != nil {
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}

// Fetch returns the phrases of level in import order.
func (s *Store) Fetch(ctx context.Context, level string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT text FROM phrases WHERE level = ? ORDER BY position ASC`, level)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var phrases []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, err
		}
		phrases = append(phrases, text)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(phrases) == 0 {
		return nil, fmt.Errorf("level %s: %w", level, questions.ErrLevelNotFound)
	}
	return phrases, nil
}

// Levels returns the imported levels in ascending order.
func (s *Store) Levels(ctx context.Context) ([]string, error) {
	summaries, err := s.Summaries(ctx)
	if err != nil {
		return nil, err
	}
	levels := make([]string, len(summaries))
	for i, sum := range summaries {
		levels[i] = sum.Level
	}
	return levels, nil
}

// Summaries returns phrase and character counts per level.
func (s *Store) Summaries(ctx context.Context) ([]model.LevelSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT level, COUNT(*), COALESCE(SUM(LENGTH(text)), 0)
		FROM phrases
		GROUP BY level
		ORDER BY level ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.LevelSummary
	for rows.Next() {
		var sum model.LevelSummary
		if err := rows.Scan(&sum.Level, &sum.Phrases, &sum.Chars); err != nil {
			return nil, err
		}
		result = append(result, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes every phrase of level and reports how many were removed.
func (s *Store) Delete(ctx context.Context, level string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM phrases WHERE level = ?`, level)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
