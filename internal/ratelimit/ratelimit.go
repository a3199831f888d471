// Package ratelimit serializes outbound API calls against a sliding-window
// quota shared by all concurrently-executing tool invocations.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

const (
	// DefaultLimit is the number of requests admitted per window.
	DefaultLimit = 80

	// DefaultWindow is the trailing interval the limit applies to.
	DefaultWindow = time.Minute

	// drainMargin pads the drain timer so the oldest grant has certainly
	// left the window by the time the timer fires.
	drainMargin = 10 * time.Millisecond
)

// Governor admits callers against a sliding-window quota with strict FIFO
// ordering. Admission is what the governor meters: once a caller is granted
// a slot, how long its operation runs is its own business.
type Governor struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	grants []time.Time // admission timestamps, ascending
	queue  []*waiter   // pending callers, FIFO
	timer  *time.Timer // non-nil while a drain is scheduled

	now func() time.Time // swapped out in tests
}

type waiter struct {
	ready     chan struct{}
	abandoned bool
}

// New creates a Governor. Non-positive limit or window fall back to the
// defaults.
func New(limit int, window time.Duration) *Governor {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Governor{limit: limit, window: window, now: time.Now}
}

// Acquire blocks until a quota slot is granted or ctx is done. Callers
// queued while the window is full are granted strictly in arrival order.
func (g *Governor) Acquire(ctx context.Context) error {
	g.mu.Lock()
	g.purgeLocked()
	// A newcomer may only bypass the queue when nobody is waiting;
	// otherwise it would be admitted ahead of earlier callers whose
	// drain has not fired yet.
	if len(g.queue) == 0 && len(g.grants) < g.limit {
		g.grants = append(g.grants, g.now())
		g.mu.Unlock()
		return nil
	}

	w := &waiter{ready: make(chan struct{})}
	g.queue = append(g.queue, w)
	g.scheduleDrainLocked()
	g.mu.Unlock()

	select {
	case <-w.ready:
		return nil
	case <-ctx.Done():
		g.mu.Lock()
		select {
		case <-w.ready:
			// Granted while we were giving up; the slot is already
			// recorded, so honor it.
			g.mu.Unlock()
			return nil
		default:
		}
		w.abandoned = true
		g.mu.Unlock()
		return ctx.Err()
	}
}

// Do admits the caller through g, then runs op and returns its outcome
// unmodified.
func Do[T any](ctx context.Context, g *Governor, op func(context.Context) (T, error)) (T, error) {
	if err := g.Acquire(ctx); err != nil {
		var zero T
		return zero, err
	}
	return op(ctx)
}

// Used reports the number of slots consumed within the current window.
func (g *Governor) Used() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.purgeLocked()
	return len(g.grants)
}

// QueueDepth reports the number of callers waiting for a slot.
func (g *Governor) QueueDepth() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.queue)
}

// Limit reports the configured per-window request limit.
func (g *Governor) Limit() int {
	return g.limit
}

// purgeLocked drops grants older than the trailing window. Callers hold mu.
func (g *Governor) purgeLocked() {
	cutoff := g.now().Add(-g.window)
	i := 0
	for i < len(g.grants) && !g.grants[i].After(cutoff) {
		i++
	}
	if i > 0 {
		g.grants = append(g.grants[:0], g.grants[i:]...)
	}
}

// scheduleDrainLocked arms the drain timer for when the oldest grant leaves
// the window, unless one is already armed. Callers hold mu.
func (g *Governor) scheduleDrainLocked() {
	if g.timer != nil || len(g.grants) == 0 {
		return
	}
	wait := g.grants[0].Add(g.window).Sub(g.now()) + drainMargin
	if wait < drainMargin {
		wait = drainMargin
	}
	g.timer = time.AfterFunc(wait, g.drain)
}

// drain releases queued callers while capacity allows, then either
// reschedules itself (queue still non-empty) or clears the scheduled state.
func (g *Governor) drain() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.timer = nil
	g.purgeLocked()
	for len(g.queue) > 0 && len(g.grants) < g.limit {
		w := g.queue[0]
		g.queue = g.queue[1:]
		if w.abandoned {
			continue
		}
		g.grants = append(g.grants, g.now())
		close(w.ready)
	}
	if len(g.queue) > 0 {
		g.scheduleDrainLocked()
	}
}

// drainScheduled reports whether a drain timer is armed. Test hook.
func (g *Governor) drainScheduled() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.timer != nil
}
