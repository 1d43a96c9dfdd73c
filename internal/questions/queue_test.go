package questions

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/verte-zerg/taipu/internal/model"
)

func TestQueueIsFIFO(t *testing.T) {
	src := []model.Phrase{"a", "b", "c"}
	q := NewQueue(src)
	src[0] = "changed"

	for _, want := range []model.Phrase{"a", "b", "c"} {
		got, ok := q.Next()
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, 0, q.Len())
	_, ok := q.Next()
	assert.False(t, ok)
}
