package player

import (
	"context"

	"github.com/pibox/musicd/internal/domain/track"
)

// Mixer applies a volume percentage to the hardware output.
type Mixer interface {
	SetVolume(ctx context.Context, percent int) error
}

// Signal is a control signal delivered to a live playback process.
type Signal int

const (
	SignalPause     Signal = iota // Suspend playback in place
	SignalResume                  // Continue suspended playback
	SignalTerminate               // Stop the process
)

// Handle is a live playback process owned by the controller.
type Handle interface {
	// Signal delivers a control signal. Signalling an already-exited
	// process is not an error.
	Signal(sig Signal) error
	// Wait blocks until the process has fully terminated.
	Wait() error
	// Done is closed when the process has exited.
	Done() <-chan struct{}
}

// Engine spawns playback processes for tracks.
type Engine interface {
	Spawn(ctx context.Context, t track.Track) (Handle, error)
	// CanPause reports whether spawned processes support in-place
	// pause/resume. Engines without it fall back to stop on pause.
	CanPause() bool
}

// Broadcaster pushes state snapshots to observers.
type Broadcaster interface {
	StateChanged(Snapshot)
}
