package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pibox/musicd/internal/domain/track"
)

func fiveTracks() []track.Track {
	return []track.Track{
		{Locator: "/m/1.mp3", Title: "One"},
		{Locator: "/m/2.mp3", Title: "Two"},
		{Locator: "/m/3.mp3", Title: "Three"},
		{Locator: "/m/4.mp3", Title: "Four"},
		{Locator: "/m/5.mp3", Title: "Five"},
	}
}

func TestNew_EmptyIsInvalid(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestCatalog_NextPrevWrap(t *testing.T) {
	c, err := New(fiveTracks())
	require.NoError(t, err)

	assert.Equal(t, 1, c.Next(0))
	assert.Equal(t, 0, c.Next(4), "advance wraps to the start")
	assert.Equal(t, 4, c.Prev(0), "retreat wraps to the end")
	assert.Equal(t, 3, c.Prev(4))
}

func TestCatalog_Normalize(t *testing.T) {
	c, err := New(fiveTracks())
	require.NoError(t, err)

	tests := []struct {
		in   int
		want int
	}{
		{0, 0},
		{4, 4},
		{5, 0},
		{7, 2},
		{-1, 4},
		{-6, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Normalize(tt.in), "Normalize(%d)", tt.in)
	}
}

func TestCatalog_TracksIsACopy(t *testing.T) {
	c, err := New(fiveTracks())
	require.NoError(t, err)

	got := c.Tracks()
	got[0].Title = "mutated"
	assert.Equal(t, "One", c.Get(0).Title)
}

func TestSet_ForMode(t *testing.T) {
	local, err := New(fiveTracks())
	require.NoError(t, err)
	remote, err := New([]track.Track{{Locator: "https://cdn.example.com/a.mp3", Title: "A"}})
	require.NoError(t, err)

	s := NewSet(local, remote)
	assert.Equal(t, 5, s.ForMode(track.ModeLocal).Size())
	assert.Equal(t, 1, s.ForMode(track.ModeRemote).Size())
}

func TestDefaultTables(t *testing.T) {
	assert.Len(t, DefaultLocalTracks(), 5)
	assert.Len(t, DefaultRemoteTracks(), 5)
	for _, tr := range DefaultRemoteTracks() {
		assert.True(t, tr.IsStream(), "remote defaults must be stream locators: %s", tr.Locator)
	}
	for _, tr := range DefaultLocalTracks() {
		assert.False(t, tr.IsStream(), "local defaults must be file paths: %s", tr.Locator)
	}
}
