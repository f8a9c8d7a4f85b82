// Package httpd serves the remote control endpoint.
package httpd

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/pibox/musicd/internal/app/daemon"
	"github.com/pibox/musicd/internal/domain/track"
)

// Dispatcher hands commands to the control loop.
type Dispatcher interface {
	Dispatch(ctx context.Context, cmd daemon.Command) (daemon.Result, error)
}

// pathOps maps request paths to control operations. The set of recognized
// paths is fixed.
var pathOps = map[string]daemon.Op{
	"/play":     daemon.OpPlayPause,
	"/pause":    daemon.OpPlayPause,
	"/next":     daemon.OpNext,
	"/prev":     daemon.OpPrev,
	"/vol_up":   daemon.OpVolumeUp,
	"/vol_down": daemon.OpVolumeDown,
	"/mute":     daemon.OpMuteToggle,
	"/mode":     daemon.OpModeToggle,
}

// Server accepts short-lived control requests and translates them into
// controller operations. Responses are plain text with permissive
// cross-origin access so any browser page or curl can drive the player.
type Server struct {
	dispatcher Dispatcher
	addr       string
	srv        *http.Server
}

// New creates the remote control server.
func New(addr string, d Dispatcher) *Server {
	s := &Server{dispatcher: d, addr: addr}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handle)

	s.srv = &http.Server{
		Addr:    addr,
		Handler: h2c.NewHandler(mux, &http2.Server{}),
	}
	return s
}

// Start begins serving in the background. A bind failure disables remote
// control with a warning; the daemon keeps running on hardware input
// alone.
func (s *Server) Start() {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		zlog.Warn().Err(err).Msgf("httpd: remote control disabled, cannot listen on %s", s.addr)
		return
	}
	zlog.Info().Msgf("httpd: remote control listening on %s", s.addr)

	go func() {
		if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			zlog.Error().Err(err).Msg("httpd: server stopped")
		}
	}()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.New().String()
	path := r.URL.Path

	w.Header().Set("Access-Control-Allow-Origin", "*")
	zlog.Debug().Str("request_id", reqID).Msgf("httpd: %s %s", r.Method, path)

	switch path {
	case "/":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, controlPage)
		return
	case "/test":
		// Liveness check, never touches player state.
		s.text(w, "OK\n")
		return
	case "/local":
		s.handleSelect(w, r, track.ModeLocal)
		return
	case "/remote":
		s.handleSelect(w, r, track.ModeRemote)
		return
	}

	op, ok := pathOps[path]
	if !ok {
		// Unrecognized paths get a generic success acknowledgement, not
		// an error, so probing clients stay compatible.
		s.text(w, "OK\n")
		return
	}

	res, err := s.dispatcher.Dispatch(r.Context(), daemon.Command{Op: op})
	if err != nil {
		zlog.Warn().Err(err).Str("request_id", reqID).Msgf("httpd: dispatch failed for %s", path)
		s.text(w, "OK\n")
		return
	}
	s.text(w, res.Text+"\n")
}

// handleSelect serves /local?song=N and /remote?song=N. A missing,
// malformed or out-of-range song number falls back to track 0.
func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request, m track.Mode) {
	idx := 0
	if v := r.URL.Query().Get("song"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			idx = n
		}
	}

	res, err := s.dispatcher.Dispatch(r.Context(), daemon.Command{Op: daemon.OpSelect, Mode: m, Index: idx})
	if err != nil {
		s.text(w, "OK\n")
		return
	}
	s.text(w, fmt.Sprintf("Now playing %s track %d: %s.\nTriggered via %s?song=%d over HTTP.\n",
		m, res.Index, res.Track.Title, r.URL.Path, res.Index))
}

func (s *Server) text(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, body)
}

// controlPage is the minimal browser control surface.
const controlPage = `<html><body><h1>Pi Music Remote</h1>
<button onclick='fetch("/play")'>Play/Pause</button><br>
<button onclick='fetch("/next")'>Next</button><br>
<button onclick='fetch("/prev")'>Prev</button><br>
<button onclick='fetch("/vol_up")'>Vol +</button><br>
<button onclick='fetch("/vol_down")'>Vol -</button><br>
<button onclick='fetch("/mute")'>Mute</button><br>
<button onclick='fetch("/mode")'>Toggle Local/Remote</button><br>
</body></html>
`
