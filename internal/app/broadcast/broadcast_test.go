package broadcast

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pibox/musicd/internal/app/player"
	"github.com/pibox/musicd/internal/domain/track"
)

func sampleSnapshot() player.Snapshot {
	return player.Snapshot{
		Title:    "Heat Waves",
		Artist:   "Glass Animals",
		Index:    2,
		Total:    5,
		Mode:     track.ModeRemote,
		Playback: player.PlaybackPlaying,
		Volume:   75,
	}
}

func TestRender_ContainsStateFields(t *testing.T) {
	out := Render(sampleSnapshot(), "musicd build test", ":8888")

	assert.Contains(t, out, "SONG      : Heat Waves")
	assert.Contains(t, out, "NUMBER    : 3 / 5")
	assert.Contains(t, out, "MODE      : Remote Mode")
	assert.Contains(t, out, "STATUS    : Playing")
	assert.Contains(t, out, "VOLUME    : 75%")
	assert.Contains(t, out, "ARTIST    : Glass Animals")
	assert.Contains(t, out, "INFO      : musicd build test")
	assert.Contains(t, out, "P = Play/Pause")
	assert.Contains(t, out, "http://<pi-ip>:8888")
}

func TestRender_InfoLineOverridesBuildTag(t *testing.T) {
	s := sampleSnapshot()
	s.Info = "Volume changed"
	out := Render(s, "musicd build test", ":8888")

	assert.Contains(t, out, "INFO      : Volume changed")
	assert.NotContains(t, out, "musicd build test")
}

func TestRender_MutedStatus(t *testing.T) {
	s := sampleSnapshot()
	s.Muted = true
	out := Render(s, "", ":8888")

	assert.Contains(t, out, "STATUS    : Playing (muted)")
}

func TestBroadcaster_DeliversToAllObservers(t *testing.T) {
	var a, b []player.Snapshot
	bc := New()
	bc.Register(observerFunc(func(s player.Snapshot) { a = append(a, s) }))
	bc.Register(observerFunc(func(s player.Snapshot) { b = append(b, s) }))

	bc.StateChanged(sampleSnapshot())
	assert.Len(t, a, 1)
	assert.Len(t, b, 1)
}

type observerFunc func(player.Snapshot)

func (f observerFunc) StateChanged(s player.Snapshot) { f(s) }

func TestDisplaySink_UnavailableDeviceFallsBack(t *testing.T) {
	// No such device: the sink must degrade, not fail.
	sink := NewDisplaySink(filepath.Join(t.TempDir(), "missing", "tty"), "tag", ":8888")

	assert.NotPanics(t, func() {
		sink.StateChanged(sampleSnapshot())
	})
}

func TestDisplaySink_WritesToDevice(t *testing.T) {
	device := filepath.Join(t.TempDir(), "tty")
	// O_WRONLY open requires the file to exist, like a real device node.
	require.NoError(t, os.WriteFile(device, nil, 0644))

	sink := NewDisplaySink(device, "tag", ":8888")
	sink.StateChanged(sampleSnapshot())

	data, err := os.ReadFile(device)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Heat Waves")
}
