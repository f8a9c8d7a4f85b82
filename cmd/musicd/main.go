// Package main provides the music daemon entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/pibox/musicd/internal/api/httpd"
	"github.com/pibox/musicd/internal/app/broadcast"
	"github.com/pibox/musicd/internal/app/daemon"
	"github.com/pibox/musicd/internal/app/debounce"
	"github.com/pibox/musicd/internal/app/player"
	"github.com/pibox/musicd/internal/domain/track"
	"github.com/pibox/musicd/internal/infra/alsa"
	"github.com/pibox/musicd/internal/infra/config"
	"github.com/pibox/musicd/internal/infra/engine"
	"github.com/pibox/musicd/internal/infra/input"
	"github.com/pibox/musicd/internal/infra/logger"
)

const buildTag = "musicd build 1.2.0"

var (
	app        = kingpin.New("musicd", "Embedded music player control daemon")
	configPath = app.Flag("config", "Path to config file").Default("config/musicd.yaml").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file (default: stdout)").String()

	// list-tracks command
	listTracksCmd = app.Command("list-tracks", "List the configured catalogs and exit")
)

func init() {
	// start command (default)
	app.Command("start", "Start the daemon (default)").Default()
}

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	loggerConfig := logger.Config{Output: "stdout", Level: "info"}
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if *logfile != "" {
		loggerConfig.Output = *logfile
	}
	if err := logger.Init(loggerConfig); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	zlog.Info().Msgf("Loading config from %s", *configPath)
	cfg, err := config.Load(*configPath)
	if err != nil {
		zlog.Fatal().Msgf("Failed to load config: %v", err)
	}

	if command == listTracksCmd.FullCommand() {
		if err := printTracks(cfg); err != nil {
			zlog.Fatal().Msgf("Failed to list tracks: %v", err)
		}
		return
	}

	if err := run(cfg); err != nil {
		zlog.Error().Msgf("Daemon error: %v", err)
		os.Exit(1)
	}
}

// run executes the main daemon logic. Using a separate function ensures
// defer statements are executed even when returning with an error.
func run(cfg *config.Config) error {
	catalogs, err := cfg.BuildCatalogs()
	if err != nil {
		return fmt.Errorf("failed to build catalogs: %w", err)
	}

	eng, err := engine.New(cfg.Engine.Type, cfg.Engine.Settings)
	if err != nil {
		return fmt.Errorf("failed to create playback engine: %w", err)
	}

	mixer := alsa.New(alsa.Config{
		Binary:  cfg.Mixer.Binary,
		Card:    cfg.Mixer.Card,
		Control: cfg.Mixer.Control,
	})

	// The input device is the appliance's primary control surface; not
	// having it is a startup failure.
	reader, err := input.Open(cfg.Input.Device)
	if err != nil {
		return fmt.Errorf("failed to open input device: %w", err)
	}
	defer reader.Close()

	bc := broadcast.New()
	bc.Register(broadcast.NewDisplaySink(cfg.Display.Device, buildTag, cfg.Server.Addr))
	bc.Register(broadcast.NewLogSink())

	ctrl := player.NewController(catalogs, eng, mixer, bc, player.Config{
		InitialVolume: cfg.Playback.InitialVolume,
		VolumeStep:    cfg.Playback.VolumeStep,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := reader.Run(ctx); err != nil {
			zlog.Error().Err(err).Msg("Input device read failed")
		}
	}()

	d := daemon.New(ctrl, debounce.New(time.Duration(cfg.Playback.DebounceMs)*time.Millisecond), reader.Events(), daemon.Config{
		Tick:         time.Duration(cfg.Playback.TickMs) * time.Millisecond,
		AutoplayIdle: time.Duration(cfg.Playback.AutoplayIdleSec) * time.Second,
	})

	var srv *httpd.Server
	if cfg.Server.Disabled {
		zlog.Info().Msg("Remote control endpoint disabled by config")
	} else {
		srv = httpd.New(cfg.Server.Addr, d)
		srv.Start()
	}

	loopDone := make(chan error, 1)
	go func() {
		loopDone <- d.Run(ctx)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		zlog.Info().Msg("Received shutdown signal...")
	case err := <-loopDone:
		return fmt.Errorf("control loop exited: %w", err)
	}

	// Unblock the device read, then wait for the loop to terminate any
	// live playback process before releasing the rest.
	cancel()
	_ = reader.Close()
	<-loopDone

	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zlog.Error().Msgf("Failed to shutdown remote endpoint: %v", err)
		}
	}

	zlog.Info().Msg("Daemon stopped")
	return nil
}

// printTracks prints both catalogs.
func printTracks(cfg *config.Config) error {
	catalogs, err := cfg.BuildCatalogs()
	if err != nil {
		return err
	}

	for _, m := range []track.Mode{track.ModeLocal, track.ModeRemote} {
		cat := catalogs.ForMode(m)
		fmt.Printf("%s catalog (%d tracks):\n", m, cat.Size())
		for i, t := range cat.Tracks() {
			fmt.Printf("  %2d. %-30s - %-25s %s\n", i, t.Title, t.Artist, t.Locator)
		}
		fmt.Println()
	}
	return nil
}
