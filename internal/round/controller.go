// Package round drives the screens, timers and score of a typing round.
package round

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/taipu/internal/match"
	"github.com/verte-zerg/taipu/internal/model"
	"github.com/verte-zerg/taipu/internal/questions"
)

// Defaults for a round.
const (
	DefaultTimeLimit = 60 * time.Second
	DefaultCountdown = 3

	countdownInterval = time.Second
	elapsedInterval   = 100 * time.Millisecond
)

// ErrWrongScreen reports a transition requested from a screen that does not allow it.
var ErrWrongScreen = errors.New("transition not allowed on current screen")

// Loader fetches the phrases for a level.
type Loader interface {
	Load(ctx context.Context, level string) ([]model.Phrase, error)
}

// Shuffler randomizes phrase order in place.
type Shuffler interface {
	Shuffle(phrases []model.Phrase) []model.Phrase
}

// Config holds round timing settings.
type Config struct {
	TimeLimit time.Duration
	Countdown int
}

// Option customizes a Controller.
type Option func(*Controller)

// WithClock replaces the wall clock used for elapsed time.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// Controller owns all mutable round state.
type Controller struct {
	loader   Loader
	shuffler Shuffler
	cfg      Config
	now      func() time.Time

	screen    model.Screen
	roundID   string
	level     string
	queue     *questions.Queue
	engine    *match.Engine
	ticker    Ticker
	countdown int
	startedAt time.Time
	elapsed   time.Duration
	score     int
	tally     model.Tally
	result    model.RoundResult
}

// NewController returns a controller on the Start screen.
func NewController(loader Loader, shuffler Shuffler, cfg Config, opts ...Option) *Controller {
	if cfg.TimeLimit <= 0 {
		cfg.TimeLimit = DefaultTimeLimit
	}
	if cfg.Countdown < 0 {
		cfg.Countdown = 0
	}
	c := &Controller{
		loader:   loader,
		shuffler: shuffler,
		cfg:      cfg,
		now:      time.Now,
		screen:   model.ScreenStart,
		queue:    questions.NewQueue(nil),
		engine:   match.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Screen returns the visible screen.
func (c *Controller) Screen() model.Screen { return c.screen }

// Score returns the current score.
func (c *Controller) Score() int { return c.score }

// Elapsed returns the elapsed round time.
func (c *Controller) Elapsed() time.Duration { return c.elapsed }

// TimeLimit returns the round time limit.
func (c *Controller) TimeLimit() time.Duration { return c.cfg.TimeLimit }

// Countdown returns the remaining countdown steps.
func (c *Controller) Countdown() int { return c.countdown }

// Level returns the level of the current or last round.
func (c *Controller) Level() string { return c.level }

// Remaining returns the number of phrases left in the queue.
func (c *Controller) Remaining() int { return c.queue.Len() }

// Cursor returns the match cursor in the active phrase.
func (c *Controller) Cursor() int { return c.engine.Cursor() }

// Marks returns the render marks of the active phrase.
func (c *Controller) Marks() []match.Mark { return c.engine.Marks() }

// Result returns the result of the last finished round.
func (c *Controller) Result() model.RoundResult { return c.result }

// Prepare loads and shuffles the phrases for level without touching round
// state, so it can run off the event loop.
func (c *Controller) Prepare(ctx context.Context, level string) ([]model.Phrase, error) {
	if c.screen != model.ScreenStart {
		return nil, fmt.Errorf("prepare on %s screen: %w", c.screen, ErrWrongScreen)
	}
	phrases, err := c.loader.Load(ctx, level)
	if err != nil {
		return nil, err
	}
	return c.shuffler.Shuffle(phrases), nil
}

// Begin populates the question store and moves Start to Countdown.
func (c *Controller) Begin(level string, phrases []model.Phrase) ([]Effect, error) {
	if c.screen != model.ScreenStart {
		return nil, fmt.Errorf("begin on %s screen: %w", c.screen, ErrWrongScreen)
	}
	c.roundID = uuid.NewString()
	c.level = level
	c.queue = questions.NewQueue(phrases)
	c.score = 0
	c.tally = model.Tally{}
	c.elapsed = 0
	c.result = model.RoundResult{}
	log.Printf("round %s: level %s with %d phrases", c.roundID, level, len(phrases))

	effects := []Effect{ScoreChanged{Score: 0}, ElapsedChanged{Elapsed: 0}}
	if c.cfg.Countdown == 0 {
		return append(effects, c.startTyping()...), nil
	}
	c.countdown = c.cfg.Countdown
	c.screen = model.ScreenCountdown
	effects = append(effects,
		ScreenChanged{Screen: model.ScreenCountdown},
		CountdownChanged{Count: c.countdown},
		c.ticker.Restart(TickCountdown, countdownInterval),
	)
	return effects, nil
}

// Tick advances the running timer. Ticks from cancelled timers are ignored.
func (c *Controller) Tick(msg TickMsg) []Effect {
	if !c.ticker.Accept(msg) {
		return nil
	}
	switch msg.Kind {
	case TickCountdown:
		c.countdown--
		if c.countdown > 0 {
			return []Effect{CountdownChanged{Count: c.countdown}, c.ticker.Next()}
		}
		c.ticker.Cancel()
		return c.startTyping()
	case TickElapsed:
		at := msg.At
		if at.IsZero() {
			at = c.now()
		}
		c.elapsed = at.Sub(c.startedAt)
		if c.elapsed >= c.cfg.TimeLimit {
			return c.finish(model.EndTimeout)
		}
		return []Effect{ElapsedChanged{Elapsed: c.elapsed}, c.ticker.Next()}
	}
	return nil
}

// Input dispatches an input event to the match engine while typing.
func (c *Controller) Input(ev match.Event) []Effect {
	if ev.Kind == match.Focus || ev.Kind == match.Blur {
		c.engine.Dispatch(ev)
		log.Printf("%s: composition state reset", ev.Kind)
		return nil
	}
	if c.screen != model.ScreenTyping {
		return nil
	}
	res := c.engine.Dispatch(ev)
	if ev.Kind == match.CompositionEnd {
		log.Printf("composition %q at cursor %d: matched=%t", ev.Data, c.engine.Cursor(), res.Advanced)
	}
	if res.Abort {
		return c.finish(model.EndAborted)
	}
	if res.Missed {
		c.tally.Incorrect++
	}
	if res.Advanced {
		c.tally.Correct++
	}
	if res.Completed {
		c.score += c.engine.Phrase().Len()
		return append([]Effect{ScoreChanged{Score: c.score}}, c.nextPhrase()...)
	}
	if res.Changed {
		return []Effect{PhraseRendered{Marks: c.engine.Marks()}}
	}
	return nil
}

// Abort ends a running round early.
func (c *Controller) Abort() []Effect {
	if c.screen != model.ScreenTyping && c.screen != model.ScreenCountdown {
		return nil
	}
	return c.finish(model.EndAborted)
}

// Retry returns from Result to Start.
func (c *Controller) Retry() []Effect {
	if c.screen != model.ScreenResult {
		return nil
	}
	c.screen = model.ScreenStart
	return []Effect{ScreenChanged{Screen: model.ScreenStart}}
}

func (c *Controller) startTyping() []Effect {
	c.screen = model.ScreenTyping
	c.startedAt = c.now()
	c.elapsed = 0
	effects := []Effect{
		ScreenChanged{Screen: model.ScreenTyping},
		c.ticker.Restart(TickElapsed, elapsedInterval),
	}
	return append(effects, c.nextPhrase()...)
}

func (c *Controller) nextPhrase() []Effect {
	for {
		p, ok := c.queue.Next()
		if !ok {
			return c.finish(model.EndExhausted)
		}
		if c.engine.Load(p) {
			// Empty phrases complete immediately and score nothing.
			continue
		}
		log.Printf("round %s: phrase %q, %d left", c.roundID, p, c.queue.Len())
		return []Effect{PhraseRendered{Marks: c.engine.Marks()}}
	}
}

func (c *Controller) finish(reason model.EndReason) []Effect {
	c.ticker.Cancel()
	if reason == model.EndTimeout {
		c.elapsed = c.cfg.TimeLimit
	}
	c.engine.Unload()
	c.screen = model.ScreenResult
	c.result = model.RoundResult{
		Level:   c.level,
		Score:   c.score,
		Elapsed: c.elapsed,
		Tally:   c.tally,
		Reason:  reason,
	}
	log.Printf("round %s: finished (%s) score=%d elapsed=%.1fs", c.roundID, reason, c.score, c.elapsed.Seconds())
	return []Effect{
		ElapsedChanged{Elapsed: c.elapsed},
		ScreenChanged{Screen: model.ScreenResult},
		Finished{Result: c.result},
	}
}
