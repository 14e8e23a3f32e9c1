package shatter

import (
	"bytes"
	"image"
	"image/color"
	"slices"
	"testing"

	"github.com/matzehuels/shatter/pkg/effect"
	"github.com/matzehuels/shatter/pkg/surface"
)

func testSource(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			a := uint8(255)
			if x < size/4 {
				a = 200
			}
			img.Set(x, y, color.NRGBA{R: uint8(x * 4), G: uint8(y * 4), B: 128, A: a})
		}
	}
	return img
}

func newTestContext(t *testing.T, size int, opts Options) (*Renderer, *Context, *surface.Canvas) {
	t.Helper()
	r := New()
	rc, err := r.CreateContext(size, size, opts)
	if err != nil {
		t.Fatalf("CreateContext: %v", err)
	}
	dst, err := surface.New(size, size)
	if err != nil {
		t.Fatalf("surface.New: %v", err)
	}
	return r, rc, dst
}

func TestCreateContextSeed(t *testing.T) {
	opts := DefaultOptions()
	opts.Seed = 1234
	_, a, _ := newTestContext(t, 32, opts)
	_, b, _ := newTestContext(t, 32, opts)
	if a.Seed != 1234 {
		t.Errorf("Seed = %d, want 1234", a.Seed)
	}
	if !slices.Equal(a.Initial, b.Initial) {
		t.Error("same seed produced different geometry")
	}

	opts.Seed = 0
	_, c, _ := newTestContext(t, 32, opts)
	if c.Seed == 0 {
		t.Error("zero seed should be replaced")
	}
	if c.Delay != DefaultDelayFrames {
		t.Errorf("Delay = %d, want %d", c.Delay, DefaultDelayFrames)
	}
}

func TestResetIdempotent(t *testing.T) {
	opts := DefaultOptions()
	opts.Seed = 7
	r, rc, dst := newTestContext(t, 32, opts)
	src := testSource(32)
	initial := slices.Clone(rc.Initial)

	for f := range 40 {
		r.RenderFrame(dst, src, f, 60, rc, opts)
	}
	if slices.Equal(rc.Triangles, rc.Initial) {
		t.Fatal("simulation did not advance")
	}

	rc.Reset()
	once := slices.Clone(rc.Triangles)
	rc.Reset()
	if !slices.Equal(rc.Triangles, once) {
		t.Error("second Reset changed the state")
	}
	if !slices.Equal(rc.Triangles, initial) || !slices.Equal(rc.Initial, initial) {
		t.Error("Reset does not restore the generated set")
	}
	if rc.FrameCount != 0 {
		t.Errorf("FrameCount = %d after Reset", rc.FrameCount)
	}

	// Mutating the live set must not leak into Initial.
	rc.Triangles[0].CenterX = -1
	if rc.Initial[0].CenterX == -1 {
		t.Error("live triangles alias the initial set")
	}
}

func TestSeekDeterministic(t *testing.T) {
	opts := DefaultOptions()
	opts.Seed = 11
	opts.Transparent = false
	r, rc, dst := newTestContext(t, 32, opts)
	src := testSource(32)

	effect.Seek[Options, *Context](r, dst, src, rc, opts, 25, 60)
	tris1 := slices.Clone(rc.Triangles)
	pix1 := slices.Clone(dst.RGBA().Pix)

	// Disturb the state, then seek again from scratch.
	effect.Seek[Options, *Context](r, dst, src, rc, opts, 50, 60)
	effect.Seek[Options, *Context](r, dst, src, rc, opts, 25, 60)

	if !slices.Equal(rc.Triangles, tris1) {
		t.Error("second seek produced different triangle state")
	}
	if !bytes.Equal(dst.RGBA().Pix, pix1) {
		t.Error("second seek produced different pixels")
	}
	if rc.FrameCount != 25 {
		t.Errorf("FrameCount = %d, want 25", rc.FrameCount)
	}
}

func TestRenderFramePreRoll(t *testing.T) {
	opts := DefaultOptions()
	opts.Seed = 3
	r, rc, dst := newTestContext(t, 32, opts)
	src := testSource(32)

	for f := range DefaultDelayFrames {
		r.RenderFrame(dst, src, f, 60, rc, opts)
		if !bytes.Equal(dst.RGBA().Pix, src.Pix) {
			t.Fatalf("frame %d does not match the source", f)
		}
	}
	if !slices.Equal(rc.Triangles, rc.Initial) {
		t.Error("lead-in frames must not advance the simulation")
	}
}

func TestRenderFrameFinalDoesNotStep(t *testing.T) {
	opts := DefaultOptions()
	opts.Seed = 3
	r, rc, dst := newTestContext(t, 16, opts)
	src := testSource(16)
	const total = 15

	for f := 0; f < total-1; f++ {
		r.RenderFrame(dst, src, f, total, rc, opts)
	}
	before := slices.Clone(rc.Triangles)
	r.RenderFrame(dst, src, total-1, total, rc, opts)
	if !slices.Equal(rc.Triangles, before) {
		t.Error("final frame advanced the simulation")
	}
	// Out-of-range frames only clear.
	r.RenderFrame(dst, src, total, total, rc, opts)
	if !slices.Equal(rc.Triangles, before) {
		t.Error("frame past the end advanced the simulation")
	}
}

func TestRenderFrameBackground(t *testing.T) {
	opts := DefaultOptions()
	opts.Seed = 5
	opts.Transparent = false
	opts.BackgroundColor = "#102030"
	r, rc, dst := newTestContext(t, 16, opts)
	empty := image.NewRGBA(image.Rect(0, 0, 16, 16))

	r.RenderFrame(dst, empty, 0, 60, rc, opts)
	want := color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if got := dst.RGBA().RGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}

	opts.Transparent = true
	r.RenderFrame(dst, empty, 1, 60, rc, opts)
	for i, b := range dst.RGBA().Pix {
		if b != 0 {
			t.Fatalf("transparent frame byte %d = %d, want 0", i, b)
		}
	}
}

func TestRenderFrameSimulatedStaysInPlaceAtRest(t *testing.T) {
	// On the first simulated frame every piece is still at rest, so the
	// image is reproduced apart from anti-aliased seams.
	const size = 128
	opts := DefaultOptions()
	opts.Seed = 9
	opts.PieceCount = MinPieceCount
	opts.Transparent = false
	r, rc, dst := newTestContext(t, size, opts)
	src := image.NewRGBA(image.Rect(0, 0, size, size))
	red := color.RGBA{R: 255, A: 255}
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i], src.Pix[i+3] = 255, 255
	}

	for f := 0; f <= DefaultDelayFrames; f++ {
		r.RenderFrame(dst, src, f, 60, rc, opts)
	}
	exact := 0
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if dst.RGBA().RGBAAt(x, y) == red {
				exact++
			}
		}
	}
	if exact < size*size/2 {
		t.Errorf("only %d of %d pixels reproduced at rest", exact, size*size)
	}
}
