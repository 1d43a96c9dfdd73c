package match

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/verte-zerg/taipu/internal/model"
)

// Result reports what a dispatched event did.
type Result struct {
	// Changed is set when the cursor moved.
	Changed bool
	// Advanced is set when the input matched and the cursor moved forward.
	Advanced bool
	// Missed is set when a compared input did not match.
	Missed bool
	// Completed is set when the cursor reached the end of the phrase.
	Completed bool
	// Abort requests round termination.
	Abort bool
}

// Engine compares input against the active phrase.
type Engine struct {
	phrase    []rune
	cursor    int
	loaded    bool
	composing bool
	buffer    string
}

// New returns an engine with no active phrase.
func New() *Engine {
	return &Engine{}
}

// Load makes p the active phrase with the cursor at 0. It reports whether the
// phrase is already complete, which only happens for an empty phrase.
func (e *Engine) Load(p model.Phrase) bool {
	e.phrase = p.Runes()
	e.cursor = 0
	e.loaded = true
	return len(e.phrase) == 0
}

// Unload clears the active phrase.
func (e *Engine) Unload() {
	e.phrase = nil
	e.cursor = 0
	e.loaded = false
	e.resetComposition()
}

// Phrase returns the active phrase.
func (e *Engine) Phrase() model.Phrase {
	return model.Phrase(string(e.phrase))
}

// Cursor returns the index of the next expected character.
func (e *Engine) Cursor() int {
	return e.cursor
}

// Composing reports whether a composition is in progress.
func (e *Engine) Composing() bool {
	return e.composing
}

// Buffer returns the in-progress composed text.
func (e *Engine) Buffer() string {
	return e.buffer
}

// Marks returns the render marks for the active phrase.
func (e *Engine) Marks() []Mark {
	return Marks(e.phrase, e.cursor)
}

// Dispatch applies one input event.
func (e *Engine) Dispatch(ev Event) Result {
	switch ev.Kind {
	case KeyDown:
		return e.keyDown(ev.Key)
	case CompositionStart:
		e.composing = true
		e.buffer = ""
	case CompositionUpdate:
		e.buffer = ev.Data
	case CompositionEnd:
		e.resetComposition()
		if !e.loaded || e.cursor >= len(e.phrase) {
			return Result{}
		}
		if ev.Data != string(e.phrase[e.cursor]) {
			return Result{Missed: true}
		}
		return e.advance()
	case Focus, Blur:
		e.resetComposition()
	}
	return Result{}
}

func (e *Engine) keyDown(key string) Result {
	if key == KeyEscape {
		return Result{Abort: true}
	}
	if e.composing {
		return Result{}
	}
	switch key {
	case KeyProcess, KeyUnidentified:
		e.composing = true
		return Result{}
	case KeyBackspace:
		if e.cursor == 0 {
			return Result{}
		}
		e.cursor--
		return Result{Changed: true}
	}
	if !e.loaded || !isVisibleChar(key) || e.cursor >= len(e.phrase) {
		return Result{}
	}
	typed, _ := utf8.DecodeRuneInString(strings.ToLower(key))
	if typed != e.phrase[e.cursor] {
		return Result{Missed: true}
	}
	return e.advance()
}

func (e *Engine) advance() Result {
	e.cursor++
	return Result{Changed: true, Advanced: true, Completed: e.cursor == len(e.phrase)}
}

func (e *Engine) resetComposition() {
	e.composing = false
	e.buffer = ""
}

func isVisibleChar(key string) bool {
	if utf8.RuneCountInString(key) != 1 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(key)
	return r == ' ' || unicode.IsGraphic(r)
}
