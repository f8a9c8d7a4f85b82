package broadcast

import (
	"fmt"
	"strings"

	"github.com/pibox/musicd/internal/app/player"
	"github.com/pibox/musicd/internal/domain/track"
)

const rule = "---------------------------------------------"

// Render formats a snapshot as the appliance status screen: song, track
// number, mode, status, volume, artist, an info line and the static
// control legend.
func Render(s player.Snapshot, buildTag, remoteAddr string) string {
	var b strings.Builder

	b.WriteString("=============================================\n")
	b.WriteString("         RASPBERRY PI MUSIC PLAYER           \n")
	b.WriteString("=============================================\n\n")

	fmt.Fprintf(&b, "  SONG      : %s\n", s.Title)
	fmt.Fprintf(&b, "  NUMBER    : %d / %d\n", s.Index+1, s.Total)
	fmt.Fprintf(&b, "  MODE      : %s\n", modeText(s.Mode))
	fmt.Fprintf(&b, "  STATUS    : %s\n", statusText(s))
	fmt.Fprintf(&b, "  VOLUME    : %d%%\n", s.Volume)
	fmt.Fprintf(&b, "  ARTIST    : %s\n\n", s.Artist)

	info := s.Info
	if info == "" {
		info = buildTag
	}
	fmt.Fprintf(&b, "  INFO      : %s\n\n", info)

	b.WriteString(rule + "\n")
	b.WriteString("  CONTROLS (PHYSICAL)\n")
	b.WriteString("   P = Play/Pause\n")
	b.WriteString("   N = Next Song\n")
	b.WriteString("   R = Previous Song\n")
	b.WriteString("   U = Volume Up\n")
	b.WriteString("   D = Volume Down\n")
	b.WriteString("   M = Mute Toggle\n")
	b.WriteString("   C = Local/Remote Toggle\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "  REMOTE:  http://<pi-ip>%s\n", remoteAddr)
	b.WriteString(rule + "\n")

	return b.String()
}

func modeText(m track.Mode) string {
	if m == track.ModeRemote {
		return "Remote Mode"
	}
	return "Local Mode"
}

func statusText(s player.Snapshot) string {
	if s.Muted && s.Playback == player.PlaybackPlaying {
		return "Playing (muted)"
	}
	switch s.Playback {
	case player.PlaybackPlaying:
		return "Playing"
	case player.PlaybackPaused:
		return "Paused"
	default:
		return "Stopped"
	}
}
