package export

import (
	"context"
	"image"
	"runtime"

	"github.com/matzehuels/shatter/pkg/effect"
	"github.com/matzehuels/shatter/pkg/errors"
	"github.com/matzehuels/shatter/pkg/observability"
	"github.com/matzehuels/shatter/pkg/sink"
	"github.com/matzehuels/shatter/pkg/surface"
)

// ProgressFunc receives progress as a percentage from 0 to 100.
type ProgressFunc func(percent float64)

func (fn ProgressFunc) report(p float64) {
	if fn != nil {
		fn(p)
	}
}

// renderFrames drives a fresh context for r through every frame of cfg.
// Each rendered frame is passed to post (which may rewrite it in place)
// and collected; progress is reported as (f+1)/n scaled into [0, span].
func renderFrames[O any, C effect.Context](
	ctx context.Context,
	src *image.RGBA,
	r effect.Renderer[O, C],
	opts O,
	cfg Config,
	span float64,
	onProgress ProgressFunc,
	post func(*image.RGBA),
) ([]sink.Frame, error) {
	size := cfg.OutputSize
	rc, err := r.CreateContext(size, size, opts)
	if err != nil {
		return nil, err
	}
	dst, err := surface.New(size, size)
	if err != nil {
		return nil, err
	}

	n := cfg.FrameCount
	delay := FrameDelay(cfg.FPS)
	frames := make([]sink.Frame, 0, n)
	hooks := observability.Export()
	for f := range n {
		r.RenderFrame(dst, src, f, n, rc, opts)
		img := dst.Snapshot()
		if post != nil {
			post(img)
		}
		frames = append(frames, sink.Frame{Image: img, DelayMS: delay})
		hooks.OnFrame(ctx, f, n)
		onProgress.report(float64(f+1) / float64(n) * span)

		if f%YieldEvery == 0 {
			if err := yield(ctx); err != nil {
				return nil, err
			}
		}
	}
	return frames, nil
}

// yield gives other goroutines a chance to run and reports cancellation.
func yield(ctx context.Context) error {
	runtime.Gosched()
	if err := ctx.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeEncoderAborted, err, "export canceled")
	}
	return nil
}

func hasContent(img *image.RGBA) bool {
	for _, b := range img.Pix {
		if b != 0 {
			return true
		}
	}
	return false
}
