package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pibox/musicd/internal/domain/track"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "musicd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8888", cfg.Server.Addr)
	assert.Equal(t, "/dev/music_input", cfg.Input.Device)
	assert.Equal(t, "/dev/tty1", cfg.Display.Device)
	assert.Equal(t, "mpg123", cfg.Engine.Type)
	assert.Equal(t, 75, cfg.Playback.InitialVolume)
	assert.Equal(t, 5, cfg.Playback.VolumeStep)
	assert.Equal(t, 200, cfg.Playback.DebounceMs)
	assert.Equal(t, 0, cfg.Playback.AutoplayIdleSec)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9000"
playback:
  initial_volume: 50
  debounce_ms: 300
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 50, cfg.Playback.InitialVolume)
	assert.Equal(t, 300, cfg.Playback.DebounceMs)
	assert.Equal(t, 5, cfg.Playback.VolumeStep, "unset fields keep defaults")
}

func TestLoad_InvalidVolumeRejected(t *testing.T) {
	path := writeConfig(t, `
playback:
  initial_volume: 150
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MalformedYAMLRejected(t *testing.T) {
	path := writeConfig(t, "playback: [not a mapping")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_CatalogEntryRequiresLocator(t *testing.T) {
	path := writeConfig(t, `
catalogs:
  local:
    - title: "No locator"
      artist: "Nobody"
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MUSICD_ADDR", ":7777")
	t.Setenv("MUSICD_INPUT_DEVICE", "/dev/test_input")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":7777", cfg.Server.Addr)
	assert.Equal(t, "/dev/test_input", cfg.Input.Device)
}

func TestBuildCatalogs_DefaultsWhenEmpty(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)

	set, err := cfg.BuildCatalogs()
	require.NoError(t, err)
	assert.Equal(t, 5, set.ForMode(track.ModeLocal).Size())
}

func TestBuildCatalogs_ConfiguredTracks(t *testing.T) {
	path := writeConfig(t, `
catalogs:
  local:
    - locator: /music/song.mp3
      title: "Song"
      artist: "Artist"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	set, err := cfg.BuildCatalogs()
	require.NoError(t, err)
	assert.Equal(t, 1, set.ForMode(track.ModeLocal).Size())
	assert.Equal(t, "Song", set.ForMode(track.ModeLocal).Get(0).Title)
}
