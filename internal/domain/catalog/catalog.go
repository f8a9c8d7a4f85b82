// Package catalog provides the ordered, immutable track tables.
package catalog

import (
	"github.com/cockroachdb/errors"

	"github.com/pibox/musicd/internal/domain/track"
)

// Catalog is an ordered, read-only list of tracks. It is immutable for the
// process lifetime.
type Catalog struct {
	tracks []track.Track
}

// New creates a catalog from the given tracks.
func New(tracks []track.Track) (*Catalog, error) {
	if len(tracks) == 0 {
		return nil, errors.New("catalog must contain at least one track")
	}
	cp := make([]track.Track, len(tracks))
	copy(cp, tracks)
	return &Catalog{tracks: cp}, nil
}

// Size returns the number of tracks.
func (c *Catalog) Size() int {
	return len(c.tracks)
}

// Get returns the track at index i. The index must be in range.
func (c *Catalog) Get(i int) track.Track {
	return c.tracks[i]
}

// Tracks returns a copy of all tracks.
func (c *Catalog) Tracks() []track.Track {
	cp := make([]track.Track, len(c.tracks))
	copy(cp, c.tracks)
	return cp
}

// Normalize maps an arbitrary index into range cyclically, preserving
// relative position. Negative indexes wrap from the end.
func (c *Catalog) Normalize(i int) int {
	n := len(c.tracks)
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// Next returns the index following i, wrapping to the start.
func (c *Catalog) Next(i int) int {
	return c.Normalize(i + 1)
}

// Prev returns the index preceding i, wrapping to the end.
func (c *Catalog) Prev(i int) int {
	return c.Normalize(i - 1)
}

// Set pairs the two catalogs, one per mode.
type Set struct {
	local  *Catalog
	remote *Catalog
}

// NewSet creates a catalog set.
func NewSet(local, remote *Catalog) *Set {
	return &Set{local: local, remote: remote}
}

// ForMode returns the catalog backing the given mode.
func (s *Set) ForMode(m track.Mode) *Catalog {
	if m == track.ModeRemote {
		return s.remote
	}
	return s.local
}
