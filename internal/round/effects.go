package round

import (
	"time"

	"github.com/verte-zerg/taipu/internal/match"
	"github.com/verte-zerg/taipu/internal/model"
)

// Effect is a rendering or scheduling side effect produced by the controller.
type Effect interface {
	isEffect()
}

// ScreenChanged switches the visible screen.
type ScreenChanged struct {
	Screen model.Screen
}

// CountdownChanged updates the countdown display.
type CountdownChanged struct {
	Count int
}

// PhraseRendered redraws the active phrase.
type PhraseRendered struct {
	Marks []match.Mark
}

// ScoreChanged updates the live score display.
type ScoreChanged struct {
	Score int
}

// ElapsedChanged updates the elapsed time display.
type ElapsedChanged struct {
	Elapsed time.Duration
}

// TickScheduled asks the host to deliver a TickMsg after Interval.
type TickScheduled struct {
	Kind     TickKind
	Gen      uint64
	Interval time.Duration
}

// Finished carries the final result of a round.
type Finished struct {
	Result model.RoundResult
}

func (ScreenChanged) isEffect()    {}
func (CountdownChanged) isEffect() {}
func (PhraseRendered) isEffect()   {}
func (ScoreChanged) isEffect()     {}
func (ElapsedChanged) isEffect()   {}
func (TickScheduled) isEffect()    {}
func (Finished) isEffect()         {}
