package input

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pibox/musicd/internal/app/player"
)

func TestOpen_MissingDeviceIsFatal(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "no-such-device"))
	assert.Error(t, err)
}

func TestReader_DecodesEventCodes(t *testing.T) {
	device := filepath.Join(t.TempDir(), "input")
	// X is not a recognized code and must be skipped.
	require.NoError(t, os.WriteFile(device, []byte("PXNRUDMC"), 0644))

	r, err := Open(device)
	require.NoError(t, err)
	defer r.Close()

	go func() {
		// EOF on a regular file ends the stream; the daemon treats that
		// as the device going away.
		_ = r.Run(context.Background())
	}()

	var kinds []player.EventKind
	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-r.Events():
			if !ok {
				assert.Equal(t, []player.EventKind{
					player.EventPlayPause,
					player.EventNext,
					player.EventPrev,
					player.EventVolumeUp,
					player.EventVolumeDown,
					player.EventMuteToggle,
					player.EventModeToggle,
				}, kinds)
				return
			}
			assert.WithinDuration(t, time.Now(), ev.At, time.Second)
			kinds = append(kinds, ev.Kind)
		case <-timeout:
			t.Fatal("event stream did not close")
		}
	}
}
