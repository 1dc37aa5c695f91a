package monitoring

import (
	"sync"
	"time"
)

// A ProgressBar follows one pass of a run. Total and Finished count chunks.
type ProgressBar struct {
	sync.Mutex
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Pass       int       `json:"pass"`
	StartTime  time.Time `json:"start_time"`
	Total      uint64    `json:"total"`
	Finished   uint64    `json:"finished"`
	Mismatches int       `json:"mismatches"`
}

// IncrementFinished add a certain amount to finished element.
func (b *ProgressBar) IncrementFinished(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.Finished += amount
	if b.Finished > b.Total {
		b.Finished = b.Total
	}
}

// Update sets the finished chunks and the mismatches of the run so far.
// Finished is capped at Total.
func (b *ProgressBar) Update(finished uint64, mismatches int) {
	b.Lock()
	defer b.Unlock()

	if finished > b.Total {
		finished = b.Total
	}

	b.Finished = finished
	b.Mismatches = mismatches
}
