package httpd

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pibox/musicd/internal/app/daemon"
	"github.com/pibox/musicd/internal/domain/track"
)

// stubDispatcher records dispatched commands and returns canned results.
type stubDispatcher struct {
	commands []daemon.Command
}

func (s *stubDispatcher) Dispatch(ctx context.Context, cmd daemon.Command) (daemon.Result, error) {
	s.commands = append(s.commands, cmd)
	if cmd.Op == daemon.OpSelect {
		return daemon.Result{
			Text:  "Playing Charlie",
			Track: track.Track{Title: "Charlie", Artist: "C"},
			Index: cmd.Index,
		}, nil
	}
	return daemon.Result{Text: "Playing Alpha"}, nil
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.handle(rec, httptest.NewRequest("GET", target, nil))
	return rec
}

func TestServer_LivenessPath(t *testing.T) {
	stub := &stubDispatcher{}
	s := New(":0", stub)

	rec := get(t, s, "/test")
	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "OK\n", rec.Body.String())
	assert.Empty(t, stub.commands, "liveness check must not touch player state")
}

func TestServer_ControlPaths(t *testing.T) {
	tests := []struct {
		path string
		op   daemon.Op
	}{
		{"/play", daemon.OpPlayPause},
		{"/pause", daemon.OpPlayPause},
		{"/next", daemon.OpNext},
		{"/prev", daemon.OpPrev},
		{"/vol_up", daemon.OpVolumeUp},
		{"/vol_down", daemon.OpVolumeDown},
		{"/mute", daemon.OpMuteToggle},
		{"/mode", daemon.OpModeToggle},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			stub := &stubDispatcher{}
			s := New(":0", stub)

			rec := get(t, s, tt.path)
			assert.Equal(t, 200, rec.Code)
			require.Len(t, stub.commands, 1)
			assert.Equal(t, tt.op, stub.commands[0].Op)
			assert.Equal(t, "Playing Alpha\n", rec.Body.String())
		})
	}
}

func TestServer_LocalSelection(t *testing.T) {
	stub := &stubDispatcher{}
	s := New(":0", stub)

	rec := get(t, s, "/local?song=2")
	require.Len(t, stub.commands, 1)
	assert.Equal(t, daemon.OpSelect, stub.commands[0].Op)
	assert.Equal(t, track.ModeLocal, stub.commands[0].Mode)
	assert.Equal(t, 2, stub.commands[0].Index)
	assert.Contains(t, rec.Body.String(), "Charlie", "response names the resolved title")
	assert.Contains(t, rec.Body.String(), "track 2")
}

func TestServer_RemoteSelection(t *testing.T) {
	stub := &stubDispatcher{}
	s := New(":0", stub)

	get(t, s, "/remote?song=1")
	require.Len(t, stub.commands, 1)
	assert.Equal(t, track.ModeRemote, stub.commands[0].Mode)
}

func TestServer_MalformedSongFallsBackToZero(t *testing.T) {
	stub := &stubDispatcher{}
	s := New(":0", stub)

	get(t, s, "/local?song=garbage")
	require.Len(t, stub.commands, 1)
	assert.Equal(t, 0, stub.commands[0].Index)
}

func TestServer_UnknownPathGetsGenericOK(t *testing.T) {
	stub := &stubDispatcher{}
	s := New(":0", stub)

	rec := get(t, s, "/definitely-not-a-thing")
	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "OK\n", rec.Body.String())
	assert.Empty(t, stub.commands)
}

func TestServer_RootServesControlPage(t *testing.T) {
	s := New(":0", &stubDispatcher{})

	rec := get(t, s, "/")
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "/vol_up")
	assert.Contains(t, rec.Body.String(), "Pi Music Remote")
}

func TestServer_CORSHeaderOnEveryResponse(t *testing.T) {
	s := New(":0", &stubDispatcher{})

	for _, path := range []string{"/", "/test", "/play", "/nope"} {
		rec := get(t, s, path)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"), path)
	}
}
