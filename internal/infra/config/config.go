// Package config provides configuration loading from YAML files.
package config

import (
	"io/fs"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/pibox/musicd/internal/domain/catalog"
	"github.com/pibox/musicd/internal/domain/track"
)

// Config represents the daemon configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Input    InputConfig    `yaml:"input"`
	Display  DisplayConfig  `yaml:"display"`
	Mixer    MixerConfig    `yaml:"mixer"`
	Engine   EngineConfig   `yaml:"engine"`
	Playback PlaybackConfig `yaml:"playback"`
	Catalogs CatalogsConfig `yaml:"catalogs"`
}

// ServerConfig represents the remote control endpoint configuration.
type ServerConfig struct {
	Disabled bool   `yaml:"disabled"`
	Addr     string `yaml:"addr" default:":8888"`
}

// InputConfig represents the hardware input device configuration.
type InputConfig struct {
	Device string `yaml:"device" default:"/dev/music_input" validate:"required"`
}

// DisplayConfig represents the local text display configuration.
type DisplayConfig struct {
	Device string `yaml:"device" default:"/dev/tty1"`
}

// MixerConfig represents the hardware volume mixer configuration.
type MixerConfig struct {
	Binary  string `yaml:"binary" default:"amixer"`
	Card    int    `yaml:"card" validate:"gte=0"`
	Control string `yaml:"control" default:"PCM"`
}

// EngineConfig represents the playback engine configuration. Settings are
// strategy-specific and decoded by the engine package.
type EngineConfig struct {
	Type     string         `yaml:"type" default:"mpg123" validate:"required"`
	Settings map[string]any `yaml:"settings"`
}

// PlaybackConfig represents playback control configuration.
type PlaybackConfig struct {
	InitialVolume   int `yaml:"initial_volume" default:"75" validate:"gte=0,lte=100"`
	VolumeStep      int `yaml:"volume_step" default:"5" validate:"gte=1,lte=25"`
	DebounceMs      int `yaml:"debounce_ms" default:"200" validate:"gte=0,lte=2000"`
	TickMs          int `yaml:"tick_ms" default:"200" validate:"gte=50,lte=5000"`
	AutoplayIdleSec int `yaml:"autoplay_idle_sec" validate:"gte=0"`
}

// CatalogsConfig represents the two track tables. Empty tables fall back
// to the built-in defaults.
type CatalogsConfig struct {
	Local  []TrackConfig `yaml:"local" validate:"dive"`
	Remote []TrackConfig `yaml:"remote" validate:"dive"`
}

// TrackConfig represents a single catalog entry.
type TrackConfig struct {
	Locator string `yaml:"locator" validate:"required"`
	Title   string `yaml:"title" validate:"required"`
	Artist  string `yaml:"artist"`
}

// Load loads configuration from a YAML file. A missing file yields the
// built-in defaults; a malformed or invalid file is an error.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "failed to parse config file")
		}
	case errors.Is(err, fs.ErrNotExist):
		// Defaults only
	default:
		return nil, errors.Wrap(err, "failed to read config file")
	}

	cfg.overrideFromEnv()

	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("MUSICD_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("MUSICD_INPUT_DEVICE"); v != "" {
		c.Input.Device = v
	}
	if v := os.Getenv("MUSICD_DISPLAY_DEVICE"); v != "" {
		c.Display.Device = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	return nil
}

// BuildCatalogs assembles the catalog set from the configured tables,
// falling back to the built-in tables when a mode has no entries.
func (c *Config) BuildCatalogs() (*catalog.Set, error) {
	localTracks := toTracks(c.Catalogs.Local)
	if len(localTracks) == 0 {
		localTracks = catalog.DefaultLocalTracks()
	}
	remoteTracks := toTracks(c.Catalogs.Remote)
	if len(remoteTracks) == 0 {
		remoteTracks = catalog.DefaultRemoteTracks()
	}

	local, err := catalog.New(localTracks)
	if err != nil {
		return nil, errors.Wrap(err, "local catalog")
	}
	remote, err := catalog.New(remoteTracks)
	if err != nil {
		return nil, errors.Wrap(err, "remote catalog")
	}
	return catalog.NewSet(local, remote), nil
}

func toTracks(entries []TrackConfig) []track.Track {
	tracks := make([]track.Track, len(entries))
	for i, e := range entries {
		tracks[i] = track.Track{Locator: e.Locator, Title: e.Title, Artist: e.Artist}
	}
	return tracks
}
