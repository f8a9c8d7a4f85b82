package engine

import (
	"context"
	"fmt"
	"os/exec"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/mitchellh/mapstructure"

	"github.com/pibox/musicd/internal/app/player"
	"github.com/pibox/musicd/internal/domain/track"
)

// Settings holds mpg123 strategy settings, decoded from the engine
// settings map in the configuration.
type Settings struct {
	Player  string `mapstructure:"player"`  // mpg123 binary
	Fetcher string `mapstructure:"fetcher"` // stream fetcher binary
	Shell   string `mapstructure:"shell"`   // shell for the stream pipeline
}

// Mpg123 is the process-per-track engine strategy: every track gets its
// own playback process; pause and resume are realized with process
// suspend/continue signals.
type Mpg123 struct {
	settings Settings
}

// NewMpg123 creates the mpg123 engine from raw settings.
func NewMpg123(raw map[string]any) (*Mpg123, error) {
	s := Settings{
		Player:  "/usr/bin/mpg123",
		Fetcher: "/usr/bin/wget",
		Shell:   "/bin/sh",
	}
	if len(raw) > 0 {
		if err := mapstructure.Decode(raw, &s); err != nil {
			return nil, errors.Wrap(err, "decode mpg123 settings")
		}
	}
	return &Mpg123{settings: s}, nil
}

// CanPause reports in-place pause support. Suspend/continue signals give
// it to every spawned process.
func (e *Mpg123) CanPause() bool {
	return true
}

// Spawn starts a playback process for the track. Local files are handed to
// mpg123 directly; streams are fetched and piped into it. The process runs
// in its own process group so that pipeline children receive signals too.
func (e *Mpg123) Spawn(ctx context.Context, t track.Track) (player.Handle, error) {
	var cmd *exec.Cmd
	if t.IsStream() {
		pipeline := fmt.Sprintf("%s -qO- %q | %s -q -", e.settings.Fetcher, t.Locator, e.settings.Player)
		cmd = exec.CommandContext(ctx, e.settings.Shell, "-c", pipeline)
	} else {
		cmd = exec.CommandContext(ctx, e.settings.Player, "-q", t.Locator)
	}
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := cmd.Start(); err != nil {
		return nil, errors.Wrapf(err, "start playback process for %q", t.Title)
	}

	h := &procHandle{cmd: cmd, done: make(chan struct{})}
	go func() {
		h.err = cmd.Wait()
		close(h.done)
	}()
	return h, nil
}

// procHandle wraps a live playback process.
type procHandle struct {
	cmd  *exec.Cmd
	done chan struct{}
	err  error
}

// Signal delivers the control signal to the whole process group.
func (h *procHandle) Signal(sig player.Signal) error {
	var s syscall.Signal
	switch sig {
	case player.SignalPause:
		s = syscall.SIGSTOP
	case player.SignalResume:
		s = syscall.SIGCONT
	case player.SignalTerminate:
		s = syscall.SIGTERM
	default:
		return errors.Newf("unknown signal: %d", sig)
	}

	// Negative pid addresses the process group, so a piped fetcher dies
	// together with the decoder.
	if err := syscall.Kill(-h.cmd.Process.Pid, s); err != nil {
		if errors.Is(err, syscall.ESRCH) {
			return nil // already gone
		}
		return errors.Wrap(err, "signal playback process")
	}
	return nil
}

// Wait blocks until the process has been reaped.
func (h *procHandle) Wait() error {
	<-h.done
	return h.err
}

// Done is closed once the process has exited.
func (h *procHandle) Done() <-chan struct{} {
	return h.done
}
