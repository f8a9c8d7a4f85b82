// Package broadcast renders player state and distributes it to observers.
package broadcast

import (
	zlog "github.com/rs/zerolog/log"

	"github.com/pibox/musicd/internal/app/player"
)

// Observer receives state snapshots on every change.
type Observer interface {
	StateChanged(player.Snapshot)
}

// Broadcaster fans snapshots out to all registered observers. Observers
// must not fail the caller; delivery is fire-and-forget.
type Broadcaster struct {
	observers []Observer
}

// New creates an empty broadcaster.
func New() *Broadcaster {
	return &Broadcaster{}
}

// Register adds an observer. Not safe for concurrent use with
// StateChanged; registration happens at startup.
func (b *Broadcaster) Register(o Observer) {
	b.observers = append(b.observers, o)
}

// StateChanged delivers the snapshot to every observer.
func (b *Broadcaster) StateChanged(s player.Snapshot) {
	for _, o := range b.observers {
		o.StateChanged(s)
	}
}

// LogSink is an observer that records state changes in the log.
type LogSink struct{}

// NewLogSink creates a log sink.
func NewLogSink() *LogSink {
	return &LogSink{}
}

// StateChanged logs the snapshot at debug level.
func (l *LogSink) StateChanged(s player.Snapshot) {
	zlog.Debug().
		Str("mode", s.Mode.String()).
		Str("playback", s.Playback.String()).
		Int("track", s.Index).
		Int("volume", s.Volume).
		Bool("muted", s.Muted).
		Msgf("state: %s", s.Title)
}
