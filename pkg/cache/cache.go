// Package cache stores rendered animation artifacts between CLI runs.
//
// Rendering a shatter animation is deterministic for a given source image,
// seed and option set, so an export with an explicit seed can be served from
// a previous run. The package provides:
//
//   - [Cache]: the storage interface, with [FileCache] (one JSON file per
//     entry under the XDG cache directory) and [NullCache] (caching disabled)
//   - [Keyer]: builds cache keys from a source hash and render options
//   - [ScopedKeyer]: prefixes keys, used to scope artifacts by build version
//     so a renderer change never serves stale frames
//
// # Usage
//
//	c, _ := cache.NewFileCache(dir)
//	k := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "v1.2.0:")
//	key := k.ArtifactKey(cache.Hash(input), cache.ArtifactKeyOpts{Format: "apng", Seed: 42})
//	if data, ok, _ := c.Get(ctx, key); ok {
//	    // serve data
//	}
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long a rendered artifact stays valid.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. The bool reports a hit; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey identifies an encoded animation produced from the source
	// with the given content hash.
	ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts holds every input that changes the encoded output.
type ArtifactKeyOpts struct {
	Effect     string `json:"effect"`
	Format     string `json:"format"`
	Seed       uint64 `json:"seed"`
	Params     any    `json:"params,omitempty"`
	FrameCount int    `json:"frame_count"`
	FPS        int    `json:"fps"`
	Size       int    `json:"size"`
	Quantizer  string `json:"quantizer,omitempty"`
	Resample   string `json:"resample,omitempty"`
	Workers    int    `json:"-"`
}

// DefaultKeyer hashes the key inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<sha256>" over the source hash and options.
// Workers is excluded because the encoder output does not depend on it.
func (DefaultKeyer) ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sourceHash, opts)
}
