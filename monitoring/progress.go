package monitoring

import (
	"sync"
	"time"
)

// A ProgressBar counts finished timesteps out of a known total.
type ProgressBar struct {
	mu sync.Mutex

	ID        string
	Name      string
	StartTime time.Time
	Total     uint64
	Finished  uint64
}

// IncrementFinished marks more items as done.
func (b *ProgressBar) IncrementFinished(amount uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.Finished += amount
}

// Fraction returns the finished share in [0, 1].
func (b *ProgressBar) Fraction() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.fraction()
}

func (b *ProgressBar) fraction() float64 {
	if b.Total == 0 {
		return 1
	}

	return float64(b.Finished) / float64(b.Total)
}

type progressRsp struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	Total     uint64    `json:"total"`
	Finished  uint64    `json:"finished"`
	Remaining float64   `json:"remaining_seconds"`
}

// snapshot copies the bar and estimates the wall time left from the rate so
// far. The estimate is 0 until the first item finishes.
func (b *ProgressBar) snapshot(now time.Time) progressRsp {
	b.mu.Lock()
	defer b.mu.Unlock()

	rsp := progressRsp{
		ID:        b.ID,
		Name:      b.Name,
		StartTime: b.StartTime,
		Total:     b.Total,
		Finished:  b.Finished,
	}

	if b.Finished > 0 && b.Finished < b.Total {
		elapsed := now.Sub(b.StartTime).Seconds()
		rsp.Remaining = elapsed / b.fraction() * (1 - b.fraction())
	}

	return rsp
}
