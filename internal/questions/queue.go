package questions

import "github.com/verte-zerg/taipu/internal/model"

// Queue holds the remaining phrases of a round in order.
type Queue struct {
	items []model.Phrase
}

// NewQueue returns a queue over a copy of phrases.
func NewQueue(phrases []model.Phrase) *Queue {
	items := make([]model.Phrase, len(phrases))
	copy(items, phrases)
	return &Queue{items: items}
}

// Next removes and returns the head of the queue.
func (q *Queue) Next() (model.Phrase, bool) {
	if len(q.items) == 0 {
		return "", false
	}
	head := q.items[0]
	q.items = q.items[1:]
	return head, true
}

// Len returns the number of remaining phrases.
func (q *Queue) Len() int {
	return len(q.items)
}
