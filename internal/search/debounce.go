// Package search provides the debounced search-as-you-type helper used by
// the interactive prompts.
//
// Each keystroke resets a fixed debounce timer; only when input pauses does
// a query run. Every issued query carries a monotonically increasing
// sequence token and results whose token is no longer the latest are
// dropped, so a slow stale response can never overwrite a fresher one.
package search

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// QueryFunc runs one search query and returns its results.
type QueryFunc func(ctx context.Context, query string) (any, error)

// ResultFunc receives the results of the latest query. It is never called
// for a superseded query.
type ResultFunc func(query string, results any, err error)

// Debouncer coalesces rapid input changes into one query.
type Debouncer struct {
	interval time.Duration
	run      QueryFunc
	deliver  ResultFunc

	mu         sync.Mutex
	timer      *time.Timer
	pending    string
	hasPending bool
	seq        atomic.Uint64
}

// NewDebouncer creates a debouncer with the given quiet interval.
func NewDebouncer(interval time.Duration, run QueryFunc, deliver ResultFunc) *Debouncer {
	return &Debouncer{interval: interval, run: run, deliver: deliver}
}

// Input records a new keystroke's worth of input. Any pending timer is
// canceled and restarted.
func (d *Debouncer) Input(ctx context.Context, query string) {
	token := d.seq.Add(1)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = query
	d.hasPending = true
	d.timer = time.AfterFunc(d.interval, func() {
		d.mu.Lock()
		if d.seq.Load() == token {
			d.hasPending = false
		}
		d.mu.Unlock()
		d.fire(ctx, token, query)
	})
}

// Flush runs the given query immediately, bypassing the timer. It executes
// on the calling goroutine and returns after delivery (or after the response
// was superseded and dropped).
func (d *Debouncer) Flush(ctx context.Context, query string) {
	token := d.seq.Add(1)

	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.hasPending = false
	d.mu.Unlock()

	d.fire(ctx, token, query)
}

// FlushPending runs any query still waiting out its timer, synchronously.
// It reports whether a query ran. If the timer fires concurrently the query
// may run twice, but only the flushed run's result is delivered.
func (d *Debouncer) FlushPending(ctx context.Context) bool {
	d.mu.Lock()
	if !d.hasPending {
		d.mu.Unlock()
		return false
	}
	query := d.pending
	d.mu.Unlock()

	d.Flush(ctx, query)
	return true
}

func (d *Debouncer) fire(ctx context.Context, token uint64, query string) {
	// The request itself is not canceled once started; staleness is decided
	// when the response arrives.
	results, err := d.run(ctx, query)
	if d.seq.Load() != token {
		return // a newer query was issued, drop this response
	}
	d.deliver(query, results, err)
}
