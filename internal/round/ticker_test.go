package round

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTickerRestartInvalidatesOldTicks(t *testing.T) {
	var tk Ticker
	first := tk.Restart(TickCountdown, time.Second)
	assert.True(t, tk.Accept(TickMsg{Kind: first.Kind, Gen: first.Gen}))

	second := tk.Restart(TickElapsed, 100*time.Millisecond)
	assert.False(t, tk.Accept(TickMsg{Kind: first.Kind, Gen: first.Gen}))
	assert.True(t, tk.Accept(TickMsg{Kind: second.Kind, Gen: second.Gen}))
	assert.Equal(t, second, tk.Next())
}

func TestTickerCancel(t *testing.T) {
	var tk Ticker
	_, active := tk.Active()
	assert.False(t, active)

	s := tk.Restart(TickElapsed, 100*time.Millisecond)
	kind, active := tk.Active()
	assert.True(t, active)
	assert.Equal(t, TickElapsed, kind)

	tk.Cancel()
	_, active = tk.Active()
	assert.False(t, active)
	assert.False(t, tk.Accept(TickMsg{Kind: s.Kind, Gen: s.Gen}))
	tk.Cancel()
	assert.Equal(t, "elapsed", TickElapsed.String())
}
