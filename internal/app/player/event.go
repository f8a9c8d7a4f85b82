package player

import "time"

// EventKind identifies a normalized control intent.
type EventKind int

const (
	EventPlayPause  EventKind = iota // Toggle play/pause
	EventNext                        // Advance to the next track
	EventPrev                        // Go back to the previous track
	EventVolumeUp                    // Raise volume one step
	EventVolumeDown                  // Lower volume one step
	EventMuteToggle                  // Toggle mute
	EventModeToggle                  // Switch between local and remote catalogs
	EventEngineExit                  // Playback process terminated
)

// String returns the string representation of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventPlayPause:
		return "play_pause"
	case EventNext:
		return "next"
	case EventPrev:
		return "prev"
	case EventVolumeUp:
		return "volume_up"
	case EventVolumeDown:
		return "volume_down"
	case EventMuteToggle:
		return "mute_toggle"
	case EventModeToggle:
		return "mode_toggle"
	case EventEngineExit:
		return "engine_exit"
	default:
		return "unknown"
	}
}

// Event is a control intent with its arrival time.
type Event struct {
	Kind EventKind
	At   time.Time
	Gen  uint64 // Engine generation, set for EventEngineExit only
}
