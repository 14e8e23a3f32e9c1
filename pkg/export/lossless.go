package export

import (
	"context"
	"image"

	"github.com/matzehuels/shatter/pkg/effect"
	"github.com/matzehuels/shatter/pkg/sink"
	"github.com/matzehuels/shatter/pkg/source"
)

// Lossless renders every frame of r over img and encodes an APNG with the
// frames' alpha preserved exactly.
//
// The source is letterboxed to cfg.OutputSize first. Progress runs from
// 0 to 100 as frames are captured.
func Lossless[O any, C effect.Context](
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

	frames, err := renderFrames(ctx, src, r, opts, cfg, 100, onProgress, nil)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("First frame check", "bytes", len(frames[0].Image.Pix), "non_zero", hasContent(frames[0].Image))

	data, err := sink.RenderAPNG(frames)
	if err != nil {
		return nil, err
	}
	o.logger.Info("APNG generated", "effect", r.Name(), "frames", len(frames), "bytes", len(data))
	return data, nil
}
