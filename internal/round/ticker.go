package round

import "time"

// TickKind identifies which recurring timer produced a tick.
type TickKind int

// Tick kinds.
const (
	TickCountdown TickKind = iota + 1
	TickElapsed
)

func (k TickKind) String() string {
	switch k {
	case TickCountdown:
		return "countdown"
	case TickElapsed:
		return "elapsed"
	default:
		return "none"
	}
}

// TickMsg is delivered by the host when a scheduled tick fires.
type TickMsg struct {
	Kind TickKind
	Gen  uint64
	At   time.Time
}

// Ticker is the single recurring timer of a controller. Each Restart or
// Cancel bumps the generation, so ticks scheduled earlier are rejected.
type Ticker struct {
	kind     TickKind
	interval time.Duration
	gen      uint64
	active   bool
}

// Restart starts a timer of kind, replacing any running one.
func (t *Ticker) Restart(kind TickKind, interval time.Duration) TickScheduled {
	t.gen++
	t.kind = kind
	t.interval = interval
	t.active = true
	return t.Next()
}

// Next schedules the following tick of the running timer.
func (t *Ticker) Next() TickScheduled {
	return TickScheduled{Kind: t.kind, Gen: t.gen, Interval: t.interval}
}

// Cancel stops the running timer.
func (t *Ticker) Cancel() {
	if !t.active {
		return
	}
	t.gen++
	t.active = false
}

// Active reports the kind of the running timer, if any.
func (t *Ticker) Active() (TickKind, bool) {
	return t.kind, t.active
}

// Accept reports whether msg belongs to the running timer.
func (t *Ticker) Accept(msg TickMsg) bool {
	return t.active && msg.Kind == t.kind && msg.Gen == t.gen
}
