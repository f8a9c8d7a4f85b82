// Package debounce suppresses contact bounce on physical control events.
package debounce

import (
	"time"

	"github.com/pibox/musicd/internal/app/player"
)

// Filter drops events of a kind arriving too soon after the last accepted
// event of that same kind. Kinds are tracked independently: a rapid Next
// followed by a VolumeUp suppresses neither.
type Filter struct {
	window time.Duration
	last   map[player.EventKind]time.Time
}

// New creates a filter with the given window. A zero window accepts
// everything.
func New(window time.Duration) *Filter {
	return &Filter{
		window: window,
		last:   make(map[player.EventKind]time.Time),
	}
}

// Allow reports whether the event should be delivered. Accepted events
// become the new reference point for their kind; dropped events do not.
func (f *Filter) Allow(kind player.EventKind, at time.Time) bool {
	if f.window <= 0 {
		return true
	}
	if prev, ok := f.last[kind]; ok && at.Sub(prev) < f.window {
		return false
	}
	f.last[kind] = at
	return true
}

// ResetAll clears every window so the next event of any kind passes
// immediately. Used after remote track selection for instant physical
// response.
func (f *Filter) ResetAll() {
	for k := range f.last {
		delete(f.last, k)
	}
}
