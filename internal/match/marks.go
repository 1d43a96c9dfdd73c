package match

// MarkState is the visual state of one phrase character.
type MarkState int

// Mark states.
const (
	Pending MarkState = iota
	Current
	Done
)

func (s MarkState) String() string {
	switch s {
	case Done:
		return "done"
	case Current:
		return "current"
	default:
		return "pending"
	}
}

// Mark is one rendered phrase character.
type Mark struct {
	Char  rune
	State MarkState
}

// Marks renders phrase with [0,cursor) done, cursor current and the rest pending.
func Marks(phrase []rune, cursor int) []Mark {
	out := make([]Mark, len(phrase))
	for i, r := range phrase {
		state := Pending
		switch {
		case i < cursor:
			state = Done
		case i == cursor:
			state = Current
		}
		out[i] = Mark{Char: r, State: state}
	}
	return out
}
