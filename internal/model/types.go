// Package model defines shared data structures.
package model

import (
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultLevel is the level used when none is selected and as the load fallback.
const DefaultLevel = "1"

// Config defines game settings resolved from flags, env and the config file.
type Config struct {
	Level     string
	Levels    []string
	TimeLimit time.Duration
	Countdown int
	Source    string
	DataDir   string
	DataURL   string
	BankPath  string
	Keyboard  bool
	LogFile   string
}

// Phrase is one typing target.
type Phrase string

// NewPhrase normalizes raw question text into a phrase.
func NewPhrase(raw string) Phrase {
	return Phrase(strings.ToLower(strings.TrimSpace(raw)))
}

// Len returns the number of characters in the phrase.
func (p Phrase) Len() int {
	return utf8.RuneCountInString(string(p))
}

// Runes returns the phrase characters.
func (p Phrase) Runes() []rune {
	return []rune(string(p))
}

// Screen identifies the visible game screen.
type Screen int

// Screens in round order.
const (
	ScreenStart Screen = iota
	ScreenCountdown
	ScreenTyping
	ScreenResult
)

func (s Screen) String() string {
	switch s {
	case ScreenStart:
		return "start"
	case ScreenCountdown:
		return "countdown"
	case ScreenTyping:
		return "typing"
	case ScreenResult:
		return "result"
	default:
		return "unknown"
	}
}

// Tally counts keystrokes compared against the phrase.
type Tally struct {
	Correct   int
	Incorrect int
}

// EndReason tells why a round finished.
type EndReason int

// Round end reasons.
const (
	EndTimeout EndReason = iota
	EndExhausted
	EndAborted
)

func (r EndReason) String() string {
	switch r {
	case EndTimeout:
		return "timeout"
	case EndExhausted:
		return "exhausted"
	case EndAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// RoundResult summarizes a finished round.
type RoundResult struct {
	Level   string
	Score   int
	Elapsed time.Duration
	Tally   Tally
	Reason  EndReason
}

// LevelSummary describes a level available from a question source.
type LevelSummary struct {
	Level   string
	Phrases int
	Chars   int
}
