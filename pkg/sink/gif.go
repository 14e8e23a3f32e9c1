package sink

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"math"
	"strings"
	"sync"

	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/shatter/pkg/errors"
)

// Quantizer selects how each GIF frame's palette is built.
type Quantizer string

const (
	// QuantizeMedianCut builds an adaptive palette per frame.
	QuantizeMedianCut Quantizer = "mediancut"
	// QuantizePlan9 maps every frame onto the fixed Plan 9 palette.
	QuantizePlan9 Quantizer = "plan9"
)

// Quantizers lists the accepted quantizer names.
var Quantizers = []Quantizer{QuantizeMedianCut, QuantizePlan9}

// ParseQuantizer resolves a quantizer name, case-insensitively. Empty means
// median cut.
func ParseQuantizer(s string) (Quantizer, error) {
	if s == "" {
		return QuantizeMedianCut, nil
	}
	q := Quantizer(strings.ToLower(s))
	if err := errors.ValidateOneOf("quantizer", q, Quantizers...); err != nil {
		return "", err
	}
	return q, nil
}

// DefaultGIFWorkers is the default quantization pool size.
const DefaultGIFWorkers = 2

// ErrGIFAborted is the message of the error returned when encoding is
// canceled.
const ErrGIFAborted = "GIF generation was aborted"

// GIFOption configures GIF encoding.
type GIFOption func(*gifRenderer)

type gifRenderer struct {
	workers    int
	quantizer  Quantizer
	key        *color.RGBA
	background color.RGBA
	loopCount  int
	onProgress func(float64)
}

// WithWorkers sets the number of frames quantized in parallel.
func WithWorkers(n int) GIFOption {
	return func(r *gifRenderer) { r.workers = n }
}

// WithQuantizer selects the palette strategy.
func WithQuantizer(q Quantizer) GIFOption {
	return func(r *gifRenderer) { r.quantizer = q }
}

// WithTransparentKey declares key as the color of transparent pixels.
// Frames are written with "restore to background" disposal.
func WithTransparentKey(key color.RGBA) GIFOption {
	return func(r *gifRenderer) { r.key = &key }
}

// WithBackground sets the color reserved at palette index 0 when no
// transparent key is used.
func WithBackground(c color.RGBA) GIFOption {
	return func(r *gifRenderer) { r.background = c }
}

// WithGIFLoopCount follows image/gif: 0 loops forever, -1 plays once.
func WithGIFLoopCount(n int) GIFOption {
	return func(r *gifRenderer) { r.loopCount = n }
}

// WithProgress receives the fraction (0-1) of encoding work completed.
// Calls are serialized.
func WithProgress(fn func(float64)) GIFOption {
	return func(r *gifRenderer) { r.onProgress = fn }
}

// quantizeShare is the part of the progress range covered by per-frame
// palette work; the rest is the final LZW pass.
const quantizeShare = 0.9

// RenderGIF encodes frames as an animated GIF. Frames must be fully opaque;
// transparency is expressed only through the key color.
//
// If ctx is canceled before encoding finishes, RenderGIF returns an
// ErrCodeEncoderAborted error and no data.
func RenderGIF(ctx context.Context, frames []Frame, opts ...GIFOption) ([]byte, error) {
	if len(frames) == 0 {
		return nil, errors.New(errors.ErrCodeEncode, "gif: no frames")
	}
	r := gifRenderer{
		workers:    DefaultGIFWorkers,
		quantizer:  QuantizeMedianCut,
		background: color.RGBA{A: 0xff},
		onProgress: func(float64) {},
	}
	for _, opt := range opts {
		opt(&r)
	}

	out := &gif.GIF{
		Image:     make([]*image.Paletted, len(frames)),
		Delay:     make([]int, len(frames)),
		Disposal:  make([]byte, len(frames)),
		LoopCount: r.loopCount,
	}

	var (
		mu   sync.Mutex
		done int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, r.workers))
	for i, f := range frames {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			out.Image[i] = r.paletted(f.Image)
			out.Delay[i] = centiseconds(f.DelayMS)
			if r.key != nil {
				out.Disposal[i] = gif.DisposalBackground
			}

			mu.Lock()
			done++
			r.onProgress(quantizeShare * float64(done) / float64(len(frames)))
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil || ctx.Err() != nil {
		return nil, errors.Wrap(errors.ErrCodeEncoderAborted, context.Cause(ctx), ErrGIFAborted)
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncode, err, "gif: encode %d frames", len(frames))
	}
	if ctx.Err() != nil {
		return nil, errors.Wrap(errors.ErrCodeEncoderAborted, context.Cause(ctx), ErrGIFAborted)
	}
	r.onProgress(1)
	return buf.Bytes(), nil
}

// paletted converts one frame. Index 0 is reserved; every other index comes
// from the quantizer.
func (r *gifRenderer) paletted(img *image.RGBA) *image.Paletted {
	reserved := r.background
	if r.key != nil {
		reserved = *r.key
	}

	var colors color.Palette
	switch r.quantizer {
	case QuantizePlan9:
		colors = palette.Plan9[1:]
	default:
		colors = quantize.MedianCutQuantizer{}.Quantize(make(color.Palette, 0, 255), img)
		if len(colors) > 255 {
			colors = colors[:255]
		}
	}

	pal := make(color.Palette, 0, len(colors)+1)
	pal = append(pal, reserved)
	pal = append(pal, colors...)

	b := img.Bounds()
	pm := image.NewPaletted(b, pal)
	lookup := make(map[uint32]uint8)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			pm.SetColorIndex(x, y, r.index(pal, c, lookup))
		}
	}

	if r.key != nil {
		pm.Palette[0] = transparentKey(*r.key)
	}
	return pm
}

// index returns the palette index for c. Exact key pixels map to the
// reserved index; anything else maps to the nearest quantized color, or the
// reserved background if that is nearer.
func (r *gifRenderer) index(pal color.Palette, c color.RGBA, lookup map[uint32]uint8) uint8 {
	packed := uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
	if i, ok := lookup[packed]; ok {
		return i
	}
	var i uint8
	switch {
	case r.key != nil && c.R == r.key.R && c.G == r.key.G && c.B == r.key.B:
		i = 0
	case r.key != nil:
		i = uint8(pal[1:].Index(c) + 1)
	default:
		i = uint8(pal.Index(c))
	}
	lookup[packed] = i
	return i
}

// transparentKey is a palette entry that image/gif writes with the key's
// RGB in the color table and selects as the transparent index, because its
// alpha is zero.
type transparentKey color.RGBA

func (k transparentKey) RGBA() (r, g, b, a uint32) {
	r = uint32(k.R) * 0x101
	g = uint32(k.G) * 0x101
	b = uint32(k.B) * 0x101
	return r, g, b, 0
}

func centiseconds(ms int) int {
	return int(math.Round(float64(ms) / 10))
}
