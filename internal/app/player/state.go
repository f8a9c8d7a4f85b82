// Package player provides the playback controller and its state machine.
package player

import "github.com/pibox/musicd/internal/domain/track"

// Playback represents the playback slot state.
type Playback int

const (
	PlaybackStopped Playback = iota // No playback process
	PlaybackPlaying                 // Playback process running
	PlaybackPaused                  // Playback process suspended in place
)

// String returns the string representation of the playback state.
func (p Playback) String() string {
	switch p {
	case PlaybackStopped:
		return "stopped"
	case PlaybackPlaying:
		return "playing"
	case PlaybackPaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable view of the player state handed to observers.
type Snapshot struct {
	Title    string
	Artist   string
	Index    int // Zero-based track index
	Total    int // Size of the active catalog
	Mode     track.Mode
	Playback Playback
	Volume   int
	Muted    bool
	Info     string // One-line status text for the display
}
