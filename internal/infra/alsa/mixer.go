// Package alsa applies volume to the hardware mixer by shelling out to
// amixer.
package alsa

import (
	"context"
	"os/exec"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Config holds mixer configuration.
type Config struct {
	Binary  string // amixer binary, default "amixer"
	Card    int    // ALSA card number
	Control string // Mixer control name, default "PCM"
}

// Mixer drives the ALSA mixer through amixer. Clamping is the caller's
// responsibility; the requested percentage is applied verbatim.
type Mixer struct {
	cfg Config
}

// New creates a mixer.
func New(cfg Config) *Mixer {
	if cfg.Binary == "" {
		cfg.Binary = "amixer"
	}
	if cfg.Control == "" {
		cfg.Control = "PCM"
	}
	return &Mixer{cfg: cfg}
}

// SetVolume applies the percentage to the mixer control.
func (m *Mixer) SetVolume(ctx context.Context, percent int) error {
	cmd := exec.CommandContext(ctx, m.cfg.Binary, m.args(percent)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return errors.Wrapf(err, "amixer sset failed: %s", strings.TrimSpace(string(out)))
	}
	return nil
}

func (m *Mixer) args(percent int) []string {
	return []string{
		"-c", strconv.Itoa(m.cfg.Card),
		"sset", m.cfg.Control,
		strconv.Itoa(percent) + "%",
	}
}
