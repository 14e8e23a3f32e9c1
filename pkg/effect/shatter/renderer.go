package shatter

import (
	"image"
	"slices"

	"github.com/matzehuels/shatter/pkg/effect"
	"github.com/matzehuels/shatter/pkg/surface"
)

// Name identifies the shatter effect.
const Name = "shatter"

// DefaultDelayFrames is how many frames show the intact source before the
// pieces start moving.
const DefaultDelayFrames = 10

// Context is the simulation state for one consumer.
type Context struct {
	// Triangles is the live piece set, replaced on every simulated frame.
	Triangles []Triangle
	// Initial is the piece set as generated. It is never mutated.
	Initial []Triangle
	// FrameCount is the last frame rendered.
	FrameCount int
	// Delay is the number of static lead-in frames.
	Delay int
	// Seed is the seed the geometry was generated from.
	Seed uint64

	Width, Height int
}

// Reset restores the generated piece set and rewinds the frame counter.
func (c *Context) Reset() {
	c.Triangles = slices.Clone(c.Initial)
	c.FrameCount = 0
}

// Renderer renders the shatter effect.
type Renderer struct{}

// New returns the shatter renderer.
func New() *Renderer { return &Renderer{} }

// Name implements effect.Renderer.
func (*Renderer) Name() string { return Name }

// CreateContext generates the pieces for a width×height source. A zero
// opts.Seed is replaced with a fresh one, recorded in Context.Seed.
func (*Renderer) CreateContext(width, height int, opts Options) (*Context, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = NewSeed()
	}
	tris, err := Generate(float64(width), float64(height), opts, NewRand(seed))
	if err != nil {
		return nil, err
	}
	return &Context{
		Triangles: slices.Clone(tris),
		Initial:   tris,
		Delay:     DefaultDelayFrames,
		Seed:      seed,
		Width:     width,
		Height:    height,
	}, nil
}

// RenderFrame clears dst, fills the background unless transparent, and
// draws frame. Frames before the lead-in delay show src unchanged. Every
// later frame draws the pieces and, except on the final frame, advances
// the simulation by one step.
func (*Renderer) RenderFrame(dst *surface.Canvas, src *image.RGBA, frame, total int, rc *Context, opts Options) {
	dst.Erase()
	if !opts.Transparent {
		dst.FillColor(opts.Background())
	}

	switch {
	case frame < rc.Delay:
		dst.DrawSource(src)
	case frame < total:
		for _, t := range rc.Triangles {
			DrawTriangle(dst, src, t)
		}
		if frame < total-1 {
			rc.Triangles = StepAll(rc.Triangles, opts, 1)
		}
	}
	rc.FrameCount = frame
}

var (
	_ effect.Renderer[Options, *Context] = (*Renderer)(nil)
	_ effect.Transparency                = Options{}
	_ effect.Backgrounder                = Options{}
)
