// Package input reads hardware button events from the input character
// device.
package input

import (
	"context"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/pibox/musicd/internal/app/player"
)

// Reader turns the kernel driver's single-byte event codes into player
// events. The driver applies debounce at the contact level; the daemon's
// own filter covers rapid double-firing above it.
type Reader struct {
	f      *os.File
	events chan player.Event
}

// Open opens the input device. A missing device is a startup failure; the
// daemon must not run without its primary control surface.
func Open(device string) (*Reader, error) {
	f, err := os.Open(device)
	if err != nil {
		return nil, errors.Wrapf(err, "open input device %s", device)
	}
	return &Reader{
		f:      f,
		events: make(chan player.Event, 16),
	}, nil
}

// Events returns the stream of decoded button events. The channel closes
// when Run returns.
func (r *Reader) Events() <-chan player.Event {
	return r.events
}

// Run reads the device until it errors or the reader is closed. The
// blocking read is unblocked by Close during shutdown.
func (r *Reader) Run(ctx context.Context) error {
	defer close(r.events)

	buf := make([]byte, 1)
	for {
		n, err := r.f.Read(buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errors.Wrap(err, "read input device")
		}
		if n == 0 {
			continue
		}

		kind, ok := decode(buf[0])
		if !ok {
			zlog.Debug().Msgf("input: ignoring unknown event code %q", buf[0])
			continue
		}

		select {
		case r.events <- player.Event{Kind: kind, At: time.Now()}:
		case <-ctx.Done():
			return nil
		}
	}
}

// Close closes the device, unblocking any in-flight read.
func (r *Reader) Close() error {
	return r.f.Close()
}

func decode(b byte) (player.EventKind, bool) {
	switch b {
	case 'P':
		return player.EventPlayPause, true
	case 'N':
		return player.EventNext, true
	case 'R':
		return player.EventPrev, true
	case 'U':
		return player.EventVolumeUp, true
	case 'D':
		return player.EventVolumeDown, true
	case 'M':
		return player.EventMuteToggle, true
	case 'C':
		return player.EventModeToggle, true
	}
	return 0, false
}
