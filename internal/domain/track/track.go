// Package track provides the Track domain entity.
package track

import "strings"

// Mode selects which catalog a track index refers to.
type Mode int

const (
	ModeLocal  Mode = iota // On-device files
	ModeRemote             // Network streams
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeLocal:
		return "local"
	case ModeRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeLocal {
		return ModeRemote
	}
	return ModeLocal
}

// Track represents a single playable entry in a catalog.
type Track struct {
	Locator string // Filesystem path (local) or stream URL (remote)
	Title   string // Display title
	Artist  string // Display artist
}

// IsStream reports whether the track is fetched over the network rather
// than read from the local filesystem.
func (t Track) IsStream() bool {
	return strings.HasPrefix(t.Locator, "http://") || strings.HasPrefix(t.Locator, "https://")
}
