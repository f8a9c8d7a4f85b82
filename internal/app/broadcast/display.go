package broadcast

import (
	"io"
	"os"

	zlog "github.com/rs/zerolog/log"

	"github.com/pibox/musicd/internal/app/player"
)

const clearScreen = "\033[2J\033[H"

// DisplaySink renders snapshots to the local text display. When the
// display device cannot be opened or written, it falls back to stdout; a
// rendering destination error never reaches the caller.
type DisplaySink struct {
	w        io.Writer
	buildTag string
	remote   string
}

// NewDisplaySink opens the display device for writing. An unavailable
// device degrades to stdout with a warning.
func NewDisplaySink(device, buildTag, remoteAddr string) *DisplaySink {
	var w io.Writer = os.Stdout
	if device != "" {
		f, err := os.OpenFile(device, os.O_WRONLY, 0)
		if err != nil {
			zlog.Warn().Err(err).Msgf("broadcast: display %s unavailable, using stdout", device)
		} else {
			w = f
		}
	}
	return &DisplaySink{w: w, buildTag: buildTag, remote: remoteAddr}
}

// StateChanged clears the screen and redraws the status page.
func (d *DisplaySink) StateChanged(s player.Snapshot) {
	if _, err := io.WriteString(d.w, clearScreen+Render(s, d.buildTag, d.remote)); err != nil {
		zlog.Warn().Err(err).Msg("broadcast: display write failed, switching to stdout")
		d.w = os.Stdout
	}
}
