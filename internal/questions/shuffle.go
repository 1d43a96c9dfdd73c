package questions

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/taipu/internal/model"
)

// Shuffler randomizes phrase order.
type Shuffler struct {
	rnd *rand.Rand
}

// NewShuffler returns a Shuffler seeded with the current time.
func NewShuffler() *Shuffler {
	return NewSeededShuffler(time.Now().UnixNano())
}

// NewSeededShuffler returns a Shuffler with a fixed seed.
func NewSeededShuffler(seed int64) *Shuffler {
	return &Shuffler{rnd: rand.New(rand.NewSource(seed))}
}

// Shuffle permutes phrases in place with Fisher-Yates and returns the same slice.
func (s *Shuffler) Shuffle(phrases []model.Phrase) []model.Phrase {
	for i := len(phrases) - 1; i > 0; i-- {
		j := s.rnd.Intn(i + 1)
		phrases[i], phrases[j] = phrases[j], phrases[i]
	}
	return phrases
}
