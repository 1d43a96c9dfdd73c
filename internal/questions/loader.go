package questions

import (
	"context"
	"fmt"
	"log"

	"github.com/verte-zerg/taipu/internal/model"
)

// Loader fetches a level's phrases with fallback to a default level.
type Loader struct {
	source       Source
	defaultLevel string
}

// NewLoader returns a loader that falls back to defaultLevel.
func NewLoader(source Source, defaultLevel string) *Loader {
	if defaultLevel == "" {
		defaultLevel = model.DefaultLevel
	}
	return &Loader{source: source, defaultLevel: defaultLevel}
}

// DefaultLevel returns the fallback level.
func (l *Loader) DefaultLevel() string {
	return l.defaultLevel
}

// Load fetches the phrases for level. On failure it fetches the default level
// instead; an error is returned only when the fallback fails too.
func (l *Loader) Load(ctx context.Context, level string) ([]model.Phrase, error) {
	if level == "" {
		level = l.defaultLevel
	}
	raw, err := l.source.Fetch(ctx, level)
	if err != nil {
		log.Printf("failed to load level %s, falling back to level %s: %v", level, l.defaultLevel, err)
		raw, err = l.source.Fetch(ctx, l.defaultLevel)
		if err != nil {
			log.Printf("error loading questions: %v", err)
			return nil, fmt.Errorf("failed to load questions: %w", err)
		}
	}
	phrases := make([]model.Phrase, 0, len(raw))
	for _, r := range raw {
		phrases = append(phrases, model.NewPhrase(r))
	}
	log.Printf("loaded %d phrases for level %s", len(phrases), level)
	return phrases, nil
}
