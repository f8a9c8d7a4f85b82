// Package engine runs the external playback process.
package engine

import (
	"github.com/cockroachdb/errors"

	"github.com/pibox/musicd/internal/app/player"
)

// New creates the playback engine named by typ, decoding the
// strategy-specific settings map.
func New(typ string, settings map[string]any) (player.Engine, error) {
	switch typ {
	case "mpg123", "":
		return NewMpg123(settings)
	default:
		return nil, errors.Newf("unknown engine type: %s", typ)
	}
}
