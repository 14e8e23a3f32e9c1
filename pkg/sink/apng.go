package sink

import (
	"bytes"
	"math"

	"github.com/kettek/apng"

	"github.com/matzehuels/shatter/pkg/errors"
)

// APNGOption configures APNG encoding.
type APNGOption func(*apngRenderer)

type apngRenderer struct {
	loopCount uint
}

// WithAPNGLoopCount sets how many times the animation plays. Zero, the
// default, loops forever.
func WithAPNGLoopCount(n uint) APNGOption {
	return func(r *apngRenderer) { r.loopCount = n }
}

// RenderAPNG encodes frames as an animated PNG. Every frame replaces the
// whole canvas (no disposal, source blending), so partially transparent
// pixels never accumulate across frames.
func RenderAPNG(frames []Frame, opts ...APNGOption) ([]byte, error) {
	if len(frames) == 0 {
		return nil, errors.New(errors.ErrCodeEncode, "apng: no frames")
	}
	r := apngRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	a := apng.APNG{
		Frames:    make([]apng.Frame, len(frames)),
		LoopCount: r.loopCount,
	}
	bounds := frames[0].Image.Bounds()
	for i, f := range frames {
		if f.Image.Bounds() != bounds {
			return nil, errors.New(errors.ErrCodeEncode, "apng: frame %d is %v, want %v", i, f.Image.Bounds(), bounds)
		}
		if f.DelayMS < 0 || f.DelayMS > math.MaxUint16 {
			return nil, errors.New(errors.ErrCodeEncode, "apng: frame %d delay %dms out of range", i, f.DelayMS)
		}
		a.Frames[i] = apng.Frame{
			Image:            f.Image,
			DelayNumerator:   uint16(f.DelayMS),
			DelayDenominator: 1000,
			DisposeOp:        apng.DISPOSE_OP_NONE,
			BlendOp:          apng.BLEND_OP_SOURCE,
		}
	}

	var buf bytes.Buffer
	if err := apng.Encode(&buf, a); err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncode, err, "apng: encode %d frames", len(frames))
	}
	return buf.Bytes(), nil
}
