// Package daemon runs the control loop that serializes every input source
// into the playback controller.
package daemon

import (
	"context"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/pibox/musicd/internal/app/debounce"
	"github.com/pibox/musicd/internal/app/player"
	"github.com/pibox/musicd/internal/domain/track"
)

// Op identifies a remote control operation.
type Op int

const (
	OpPing       Op = iota // Liveness check, no state touched
	OpPlayPause            // Toggle play/pause
	OpNext                 // Next track
	OpPrev                 // Previous track
	OpVolumeUp             // Volume up one step
	OpVolumeDown           // Volume down one step
	OpMuteToggle           // Toggle mute
	OpModeToggle           // Toggle local/remote mode
	OpSelect               // Direct track selection
)

// Command is a remote control request handed to the loop.
type Command struct {
	Op    Op
	Mode  track.Mode // OpSelect only
	Index int        // OpSelect only
}

// Result is the loop's answer to a command.
type Result struct {
	Text  string
	Track track.Track // Resolved track, OpSelect only
	Index int         // Resolved index, OpSelect only
}

// Config holds loop configuration.
type Config struct {
	Tick         time.Duration // Housekeeping interval
	AutoplayIdle time.Duration // Start playback after this much idle time; 0 disables
}

type dispatchReq struct {
	cmd   Command
	reply chan Result
}

// Daemon multiplexes hardware events, remote commands, engine exit
// notifications and a housekeeping tick onto the single goroutine that
// owns the controller.
type Daemon struct {
	ctrl   *player.Controller
	filter *debounce.Filter
	hw     <-chan player.Event
	cmds   chan dispatchReq
	cfg    Config
}

// New creates the daemon loop.
func New(ctrl *player.Controller, filter *debounce.Filter, hw <-chan player.Event, cfg Config) *Daemon {
	if cfg.Tick <= 0 {
		cfg.Tick = 200 * time.Millisecond
	}
	return &Daemon{
		ctrl:   ctrl,
		filter: filter,
		hw:     hw,
		cmds:   make(chan dispatchReq),
		cfg:    cfg,
	}
}

// Dispatch hands a command to the control loop and waits for its result.
// Commands bypass the debounce filter: network requests carry no contact
// bounce. One command is fully handled before the next is taken.
func (d *Daemon) Dispatch(ctx context.Context, cmd Command) (Result, error) {
	req := dispatchReq{cmd: cmd, reply: make(chan Result, 1)}
	select {
	case d.cmds <- req:
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
	select {
	case res := <-req.reply:
		return res, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Run drives the control loop until ctx is cancelled. All player state
// mutation happens here. On return any live playback process has been
// terminated and reaped.
func (d *Daemon) Run(ctx context.Context) error {
	d.ctrl.Init(ctx)

	ticker := time.NewTicker(d.cfg.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.ctrl.Shutdown()
			return nil

		case ev, ok := <-d.hw:
			if !ok {
				// Input device gone; keep serving remote control.
				zlog.Warn().Msg("daemon: hardware event stream closed")
				d.hw = nil
				continue
			}
			if !d.filter.Allow(ev.Kind, ev.At) {
				zlog.Debug().Msgf("daemon: debounced %s", ev.Kind)
				continue
			}
			d.handleEvent(ctx, ev)

		case ev := <-d.ctrl.Exits():
			d.ctrl.HandleEngineExit(ctx, ev)

		case req := <-d.cmds:
			req.reply <- d.execute(ctx, req.cmd)

		case <-ticker.C:
			d.housekeep(ctx)
		}
	}
}

func (d *Daemon) handleEvent(ctx context.Context, ev player.Event) {
	zlog.Debug().Msgf("daemon: hardware event %s", ev.Kind)
	switch ev.Kind {
	case player.EventPlayPause:
		d.ctrl.TogglePlayPause(ctx)
	case player.EventNext:
		d.ctrl.Next(ctx)
	case player.EventPrev:
		d.ctrl.Previous(ctx)
	case player.EventVolumeUp:
		d.ctrl.VolumeUp(ctx)
	case player.EventVolumeDown:
		d.ctrl.VolumeDown(ctx)
	case player.EventMuteToggle:
		d.ctrl.ToggleMute(ctx)
	case player.EventModeToggle:
		d.ctrl.ToggleMode(ctx)
	}
}

func (d *Daemon) execute(ctx context.Context, cmd Command) Result {
	switch cmd.Op {
	case OpPing:
		return Result{Text: "OK"}
	case OpPlayPause:
		return Result{Text: d.ctrl.TogglePlayPause(ctx)}
	case OpNext:
		return Result{Text: d.ctrl.Next(ctx)}
	case OpPrev:
		return Result{Text: d.ctrl.Previous(ctx)}
	case OpVolumeUp:
		return Result{Text: d.ctrl.VolumeUp(ctx)}
	case OpVolumeDown:
		return Result{Text: d.ctrl.VolumeDown(ctx)}
	case OpMuteToggle:
		return Result{Text: d.ctrl.ToggleMute(ctx)}
	case OpModeToggle:
		return Result{Text: d.ctrl.ToggleMode(ctx)}
	case OpSelect:
		t, idx, text := d.ctrl.SelectTrack(ctx, cmd.Mode, cmd.Index)
		// Physical controls respond immediately after a remote jump.
		d.filter.ResetAll()
		return Result{Text: text, Track: t, Index: idx}
	default:
		return Result{Text: "OK"}
	}
}

// housekeep runs on every tick. With autoplay configured it starts
// playback after the player has sat idle long enough.
func (d *Daemon) housekeep(ctx context.Context) {
	if d.cfg.AutoplayIdle <= 0 {
		return
	}
	if since, ok := d.ctrl.IdleSince(); ok && time.Since(since) >= d.cfg.AutoplayIdle {
		zlog.Info().Msg("daemon: idle timeout reached, starting playback")
		d.ctrl.TogglePlayPause(ctx)
	}
}
