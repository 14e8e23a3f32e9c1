// Package effect defines the contract between an animation effect and the
// code that plays or exports it.
//
// An effect is split into a stateless [Renderer] and a per-consumer
// [Context]. The preview and each export run create their own context, so
// they never share simulation state. Frames are rendered strictly in order;
// random access is done by [Seek], which resets the context and replays.
package effect

import (
	"image"
	"image/color"

	"github.com/matzehuels/shatter/pkg/surface"
)

// Context is the mutable simulation state owned by one consumer.
type Context interface {
	// Reset restores the state that existed right after creation. It must
	// be idempotent and must not regenerate any random state.
	Reset()
}

// Renderer draws frames of one effect.
//
// O is the effect's option type and C its context type. RenderFrame must be
// called with frame = 0, 1, 2, ... on a given context; the frame argument is
// what tells the renderer whether the effect is still in its static lead-in,
// simulating, or on its final frame.
type Renderer[O any, C Context] interface {
	// Name is a stable identifier, used in cache keys and logs.
	Name() string

	// CreateContext builds the initial state for a width×height source.
	CreateContext(width, height int, opts O) (C, error)

	// RenderFrame clears dst and draws frame of total frames.
	RenderFrame(dst *surface.Canvas, src *image.RGBA, frame, total int, rc C, opts O)
}

// Transparency is implemented by option types that can ask for a transparent
// background. Exporters use it to decide on chroma keying and disposal.
type Transparency interface {
	IsTransparent() bool
}

// IsTransparent reports whether opts requests a transparent background.
// Options that do not implement Transparency are treated as opaque.
func IsTransparent(opts any) bool {
	if t, ok := opts.(Transparency); ok {
		return t.IsTransparent()
	}
	return false
}

// Backgrounder is implemented by option types with a solid background
// color. The GIF exporter reserves that color in every frame's palette.
type Backgrounder interface {
	Background() color.RGBA
}

// Seek leaves dst showing frame target by resetting rc and replaying every
// frame from 0 through target. Target is clamped to [0, total-1].
func Seek[O any, C Context](r Renderer[O, C], dst *surface.Canvas, src *image.RGBA, rc C, opts O, target, total int) {
	if total <= 0 {
		return
	}
	target = max(0, min(target, total-1))
	rc.Reset()
	for f := 0; f <= target; f++ {
		r.RenderFrame(dst, src, f, total, rc, opts)
	}
}
