// Package match implements the per-keystroke phrase matching state machine.
package match

// EventKind tags an input event.
type EventKind int

// Input event kinds.
const (
	KeyDown EventKind = iota
	CompositionStart
	CompositionUpdate
	CompositionEnd
	Focus
	Blur
)

func (k EventKind) String() string {
	switch k {
	case KeyDown:
		return "keydown"
	case CompositionStart:
		return "compositionstart"
	case CompositionUpdate:
		return "compositionupdate"
	case CompositionEnd:
		return "compositionend"
	case Focus:
		return "focus"
	case Blur:
		return "blur"
	default:
		return "unknown"
	}
}

// Named keys carried in KeyDown events.
const (
	KeyBackspace    = "Backspace"
	KeyEscape       = "Escape"
	KeyProcess      = "Process"
	KeyUnidentified = "Unidentified"
)

// Event is a tagged input event. Key is set for KeyDown; Data carries the
// composed text for composition events.
type Event struct {
	Kind EventKind
	Key  string
	Data string
}

// Key returns a KeyDown event.
func Key(key string) Event {
	return Event{Kind: KeyDown, Key: key}
}

// Compose returns the composition event sequence that commits data.
func Compose(data string) []Event {
	return []Event{
		{Kind: CompositionStart},
		{Kind: CompositionUpdate, Data: data},
		{Kind: CompositionEnd, Data: data},
	}
}
