// Package preview plays an effect in real time.
//
// A [Player] owns a private effect context and canvas; nothing it does is
// visible to an export running at the same time. The host drives it by
// calling [Player.Tick] from its display loop. The player advances one frame
// whenever at least one frame interval has passed, and wraps to frame 0 by
// resetting the context after the last frame.
//
// Scrubbing jumps to an arbitrary frame with [Player.Seek], which pauses
// playback and replays the simulation from the start. While a scrub gesture
// is in progress ([Player.BeginScrub]) ticks are ignored.
package preview

import (
	"image"
	"time"

	"github.com/matzehuels/shatter/pkg/effect"
	"github.com/matzehuels/shatter/pkg/export"
	"github.com/matzehuels/shatter/pkg/source"
	"github.com/matzehuels/shatter/pkg/surface"
)

// Player is a real-time preview of one effect over one source image.
type Player[O any, C effect.Context] struct {
	renderer effect.Renderer[O, C]
	opts     O
	cfg      export.Config
	src      *image.RGBA
	rc       C
	canvas   *surface.Canvas

	frame     int
	playing   bool
	scrubbing bool
	last      time.Time
	interval  time.Duration
}

// New letterboxes img, creates a fresh context and renders frame 0. The
// player starts in the playing state.
func New[O any, C effect.Context](r effect.Renderer[O, C], img image.Image, opts O, cfg export.Config, k source.Kernel) (*Player[O, C], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	src, err := source.Letterbox(img, cfg.OutputSize, k)
	if err != nil {
		return nil, err
	}
	rc, err := r.CreateContext(cfg.OutputSize, cfg.OutputSize, opts)
	if err != nil {
		return nil, err
	}
	canvas, err := surface.New(cfg.OutputSize, cfg.OutputSize)
	if err != nil {
		return nil, err
	}

	p := &Player[O, C]{
		renderer: r,
		opts:     opts,
		cfg:      cfg,
		src:      src,
		rc:       rc,
		canvas:   canvas,
		playing:  true,
		interval: time.Second / time.Duration(cfg.FPS),
	}
	r.RenderFrame(canvas, src, 0, cfg.FrameCount, rc, opts)
	return p, nil
}

// Tick advances playback if a frame interval has elapsed since the last
// advance. It reports whether a new frame was rendered.
func (p *Player[O, C]) Tick(now time.Time) bool {
	if !p.playing || p.scrubbing {
		return false
	}
	if p.last.IsZero() {
		p.last = now
		return false
	}
	if now.Sub(p.last) < p.interval {
		return false
	}
	p.last = now

	next := p.frame + 1
	if next >= p.cfg.FrameCount {
		p.rc.Reset()
		next = 0
	}
	p.renderer.RenderFrame(p.canvas, p.src, next, p.cfg.FrameCount, p.rc, p.opts)
	p.frame = next
	return true
}

// Seek pauses playback and shows frame target, clamped to the valid range.
func (p *Player[O, C]) Seek(target int) {
	p.Pause()
	target = max(0, min(target, p.cfg.FrameCount-1))
	effect.Seek(p.renderer, p.canvas, p.src, p.rc, p.opts, target, p.cfg.FrameCount)
	p.frame = target
}

// BeginScrub suspends autoplay until EndScrub.
func (p *Player[O, C]) BeginScrub() { p.scrubbing = true }

// EndScrub resumes the autoplay loop if playback is on.
func (p *Player[O, C]) EndScrub() {
	p.scrubbing = false
	p.last = time.Time{}
}

// Play resumes playback from the current frame.
func (p *Player[O, C]) Play() {
	if !p.playing {
		p.playing = true
		p.last = time.Time{}
	}
}

// Pause stops playback on the current frame.
func (p *Player[O, C]) Pause() { p.playing = false }

// Toggle flips between playing and paused.
func (p *Player[O, C]) Toggle() {
	if p.playing {
		p.Pause()
	} else {
		p.Play()
	}
}

// Playing reports whether playback is on.
func (p *Player[O, C]) Playing() bool { return p.playing }

// Scrubbing reports whether a scrub gesture is in progress.
func (p *Player[O, C]) Scrubbing() bool { return p.scrubbing }

// Frame is the index of the frame on screen.
func (p *Player[O, C]) Frame() int { return p.frame }

// Total is the number of frames in one loop.
func (p *Player[O, C]) Total() int { return p.cfg.FrameCount }

// Progress is the position in the loop as a percentage, frame/total*100.
func (p *Player[O, C]) Progress() float64 {
	return float64(p.frame) / float64(p.cfg.FrameCount) * 100
}

// Image is the frame on screen. It is overwritten by the next Tick or Seek.
func (p *Player[O, C]) Image() *image.RGBA { return p.canvas.RGBA() }

// Context exposes the player's effect context.
func (p *Player[O, C]) Context() C { return p.rc }
