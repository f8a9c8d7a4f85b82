package player

import (
	"context"
	"fmt"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/pibox/musicd/internal/domain/catalog"
	"github.com/pibox/musicd/internal/domain/track"
)

// Config holds controller configuration.
type Config struct {
	InitialVolume int // Volume applied at startup (0-100)
	VolumeStep    int // Step for VolumeUp/VolumeDown
}

// Controller is the single authority over player state; all mutation goes
// through it. Methods must be called from one goroutine only; the daemon
// loop serializes every input source before calling in. The exits channel
// is the one concession to asynchrony: process-exit watchers hand their
// notification back into the loop instead of mutating state directly.
type Controller struct {
	catalogs *catalog.Set
	engine   Engine
	mixer    Mixer
	bc       Broadcaster
	cfg      Config

	mode             track.Mode
	index            int
	volume           int
	muted            bool
	volumeBeforeMute int
	playback         Playback
	handle           Handle
	generation       uint64
	stoppedAt        time.Time

	exits chan Event
}

// NewController creates a controller in the default state: stopped, local
// mode, first track, unmuted.
func NewController(catalogs *catalog.Set, engine Engine, mixer Mixer, bc Broadcaster, cfg Config) *Controller {
	if cfg.VolumeStep <= 0 {
		cfg.VolumeStep = 5
	}
	return &Controller{
		catalogs:  catalogs,
		engine:    engine,
		mixer:     mixer,
		bc:        bc,
		cfg:       cfg,
		mode:      track.ModeLocal,
		volume:    clampVolume(cfg.InitialVolume),
		playback:  PlaybackStopped,
		stoppedAt: time.Now(),
		exits:     make(chan Event, 4),
	}
}

// Exits returns the channel on which playback process terminations are
// reported. The daemon loop feeds these back into HandleEngineExit.
func (c *Controller) Exits() <-chan Event {
	return c.exits
}

// Init applies the initial volume and shows the idle screen.
func (c *Controller) Init(ctx context.Context) {
	c.applyVolume(ctx, c.volume)
	c.broadcast("Idle")
}

// TogglePlayPause starts, pauses or resumes playback depending on the
// current state. Repeated calls alternate consistently and never leave two
// playback processes alive.
func (c *Controller) TogglePlayPause(ctx context.Context) string {
	switch c.playback {
	case PlaybackStopped:
		return c.startCurrent(ctx)

	case PlaybackPlaying:
		if !c.engine.CanPause() {
			c.stop()
			c.broadcast("Stopped")
			return "Stopped"
		}
		if err := c.handle.Signal(SignalPause); err != nil {
			zlog.Warn().Err(err).Msg("player: pause signal failed, stopping instead")
			c.stop()
			c.broadcast("Stopped")
			return "Stopped"
		}
		c.playback = PlaybackPaused
		c.broadcast("Paused")
		return "Paused"

	case PlaybackPaused:
		if err := c.handle.Signal(SignalResume); err != nil {
			zlog.Warn().Err(err).Msg("player: resume signal failed, stopping")
			c.stop()
			c.broadcast("Stopped")
			return "Stopped"
		}
		c.playback = PlaybackPlaying
		c.broadcast("Playing")
		return "Playing " + c.currentTrack().Title
	}
	return ""
}

// Next stops any live playback, advances the track index with wrap-around
// and starts the new track.
func (c *Controller) Next(ctx context.Context) string {
	c.stop()
	c.index = c.catalog().Next(c.index)
	return c.startCurrent(ctx)
}

// Previous stops any live playback, retreats the track index with
// wrap-around and starts the new track.
func (c *Controller) Previous(ctx context.Context) string {
	c.stop()
	c.index = c.catalog().Prev(c.index)
	return c.startCurrent(ctx)
}

// SetVolume clamps v to [0,100] and records it as the volume set-point.
// While muted the hardware stays silenced; only the stored set-point moves.
// An explicit unmute is required to make volume audible again.
func (c *Controller) SetVolume(ctx context.Context, v int) string {
	v = clampVolume(v)
	c.volume = v
	if !c.muted {
		c.applyVolume(ctx, v)
	}
	c.broadcast("Volume changed")
	return fmt.Sprintf("Volume %d%%", v)
}

// VolumeUp raises the volume by one step.
func (c *Controller) VolumeUp(ctx context.Context) string {
	return c.SetVolume(ctx, c.volume+c.cfg.VolumeStep)
}

// VolumeDown lowers the volume by one step.
func (c *Controller) VolumeDown(ctx context.Context) string {
	return c.SetVolume(ctx, c.volume-c.cfg.VolumeStep)
}

// ToggleMute silences the hardware while remembering the current volume,
// or restores exactly the remembered volume.
func (c *Controller) ToggleMute(ctx context.Context) string {
	if !c.muted {
		c.volumeBeforeMute = c.volume
		c.applyVolume(ctx, 0)
		c.muted = true
		c.broadcast("Muted")
		return "Muted"
	}
	c.muted = false
	c.volume = c.volumeBeforeMute
	c.applyVolume(ctx, c.volume)
	c.broadcast("Unmuted")
	return "Unmuted"
}

// ToggleMode switches between the local and remote catalogs. The track
// index is re-normalized cyclically into the new catalog's range, and
// playback restarts at the resulting track.
func (c *Controller) ToggleMode(ctx context.Context) string {
	c.stop()
	c.mode = c.mode.Toggle()
	c.index = c.catalog().Normalize(c.index)
	text := c.startCurrent(ctx)
	return fmt.Sprintf("Mode %s: %s", c.mode, text)
}

// SelectTrack jumps directly to the given track, forcing the mode. An
// out-of-range index falls back to the first track rather than erroring.
// Returns the resolved track, its index and the status text.
func (c *Controller) SelectTrack(ctx context.Context, m track.Mode, idx int) (track.Track, int, string) {
	cat := c.catalogs.ForMode(m)
	if idx < 0 || idx >= cat.Size() {
		idx = 0
	}
	c.stop()
	c.mode = m
	c.index = idx
	text := c.startCurrent(ctx)
	return cat.Get(idx), idx, text
}

// HandleEngineExit processes a playback process termination. Exits from
// generations the controller already stopped are ignored. An unexpected
// exit while playing counts as track completion: the controller advances
// to the next track and keeps playing.
func (c *Controller) HandleEngineExit(ctx context.Context, ev Event) {
	if c.handle == nil || ev.Gen != c.generation {
		return
	}
	_ = c.handle.Wait()
	c.handle = nil

	wasPlaying := c.playback == PlaybackPlaying
	c.playback = PlaybackStopped
	c.stoppedAt = time.Now()

	if !wasPlaying {
		c.broadcast("Stopped")
		return
	}

	zlog.Info().Msgf("player: track finished, advancing: index=%d mode=%s", c.index, c.mode)
	c.index = c.catalog().Next(c.index)
	c.startCurrent(ctx)
}

// Shutdown terminates any live playback process and waits for it to exit.
func (c *Controller) Shutdown() {
	c.stop()
}

// IdleSince reports when the player entered the stopped state. The second
// return is false while playing or paused.
func (c *Controller) IdleSince() (time.Time, bool) {
	if c.playback != PlaybackStopped {
		return time.Time{}, false
	}
	return c.stoppedAt, true
}

// State returns the current playback state.
func (c *Controller) State() Playback { return c.playback }

// Mode returns the active catalog mode.
func (c *Controller) Mode() track.Mode { return c.mode }

// TrackIndex returns the current track index.
func (c *Controller) TrackIndex() int { return c.index }

// Volume returns the volume set-point.
func (c *Controller) Volume() int { return c.volume }

// Muted reports whether output is muted.
func (c *Controller) Muted() bool { return c.muted }

// Snapshot returns the current state for observers.
func (c *Controller) Snapshot() Snapshot {
	return c.snapshot("")
}

func (c *Controller) catalog() *catalog.Catalog {
	return c.catalogs.ForMode(c.mode)
}

func (c *Controller) currentTrack() track.Track {
	return c.catalog().Get(c.index)
}

// startCurrent spawns the current track. A spawn failure leaves the state
// stopped, never half-started, and is reported through the broadcaster.
func (c *Controller) startCurrent(ctx context.Context) string {
	if err := c.start(ctx); err != nil {
		zlog.Error().Err(err).Msgf("player: failed to start %q", c.currentTrack().Title)
		c.broadcast("Playback failed")
		return "Playback failed"
	}
	c.broadcast("Playing")
	return "Playing " + c.currentTrack().Title
}

func (c *Controller) start(ctx context.Context) error {
	if c.handle != nil {
		return nil
	}
	t := c.currentTrack()
	h, err := c.engine.Spawn(ctx, t)
	if err != nil {
		c.playback = PlaybackStopped
		c.stoppedAt = time.Now()
		return err
	}
	c.handle = h
	c.generation++
	c.playback = PlaybackPlaying

	gen := c.generation
	go func() {
		<-h.Done()
		select {
		case c.exits <- Event{Kind: EventEngineExit, At: time.Now(), Gen: gen}:
		default:
			// Daemon loop gone during shutdown; the exit is moot.
		}
	}()
	return nil
}

// stop terminates the live playback process, if any, and confirms its exit
// before returning. This is what guarantees no two processes overlap.
func (c *Controller) stop() {
	if c.handle != nil {
		if c.playback == PlaybackPaused {
			// A suspended process ignores termination until continued.
			_ = c.handle.Signal(SignalResume)
		}
		if err := c.handle.Signal(SignalTerminate); err != nil {
			zlog.Warn().Err(err).Msg("player: terminate signal failed")
		}
		_ = c.handle.Wait()
		c.handle = nil
	}
	if c.playback != PlaybackStopped {
		c.playback = PlaybackStopped
		c.stoppedAt = time.Now()
	}
}

func (c *Controller) applyVolume(ctx context.Context, v int) {
	if err := c.mixer.SetVolume(ctx, v); err != nil {
		// Best effort: the state of record keeps the requested set-point
		// even when the hardware call fails.
		zlog.Warn().Err(err).Msgf("player: mixer apply failed: %d%%", v)
	}
}

func (c *Controller) snapshot(info string) Snapshot {
	t := c.currentTrack()
	return Snapshot{
		Title:    t.Title,
		Artist:   t.Artist,
		Index:    c.index,
		Total:    c.catalog().Size(),
		Mode:     c.mode,
		Playback: c.playback,
		Volume:   c.volume,
		Muted:    c.muted,
		Info:     info,
	}
}

func (c *Controller) broadcast(info string) {
	if c.bc != nil {
		c.bc.StateChanged(c.snapshot(info))
	}
}

func clampVolume(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
