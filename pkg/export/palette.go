package export

import (
	"context"
	"fmt"
	"image"

	"github.com/matzehuels/shatter/pkg/effect"
	"github.com/matzehuels/shatter/pkg/sink"
	"github.com/matzehuels/shatter/pkg/source"
)

// Palette renders every frame of r over img and encodes a GIF.
//
// When opts asks for transparency the source alpha is thresholded at
// source.AlphaCutoff before rendering, and every rendered frame has its
// below-cutoff pixels replaced by source.KeyColor, which the encoder
// declares transparent. Frame capture reports progress from 0 to 50 and the
// encoder from 50 to 100.
//
// A canceled ctx during encoding yields an ErrCodeEncoderAborted error.
func Palette[O any, C effect.Context](
	ctx context.Context,
	img image.Image,
	r effect.Renderer[O, C],
	opts O,
	cfg Config,
	onProgress ProgressFunc,
	options ...Option,
) ([]byte, error) {
	o := newOptions(options)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	src, err := source.Letterbox(img, cfg.OutputSize, o.kernel)
	if err != nil {
		return nil, err
	}

	transparent := effect.IsTransparent(opts)
	var post func(*image.RGBA)
	if transparent {
		source.ThresholdAlpha(src, source.AlphaCutoff)
		post = func(frame *image.RGBA) {
			source.ChromaKey(frame, source.AlphaCutoff, source.KeyColor)
		}
	}

	o.logger.Debug("Generating GIF frames", "transparent", transparent, "key", keyHex(transparent))
	frames, err := renderFrames(ctx, src, r, opts, cfg, 50, onProgress, post)
	if err != nil {
		return nil, err
	}

	gifOpts := []sink.GIFOption{
		sink.WithWorkers(o.workers),
		sink.WithQuantizer(o.quantizer),
		sink.WithProgress(func(p float64) { onProgress.report(50 + p*50) }),
	}
	if transparent {
		gifOpts = append(gifOpts, sink.WithTransparentKey(source.KeyColor))
	} else if bg, ok := any(opts).(effect.Backgrounder); ok {
		gifOpts = append(gifOpts, sink.WithBackground(bg.Background()))
	}

	o.logger.Debug("Encoding GIF", "frames", len(frames), "workers", o.workers, "quantizer", o.quantizer)
	data, err := sink.RenderGIF(ctx, frames, gifOpts...)
	if err != nil {
		return nil, err
	}
	o.logger.Info("GIF generated", "effect", r.Name(), "frames", len(frames), "bytes", len(data))
	return data, nil
}

func keyHex(transparent bool) string {
	if !transparent {
		return "none"
	}
	k := source.KeyColor
	return fmt.Sprintf("#%02X%02X%02X", k.R, k.G, k.B)
}
