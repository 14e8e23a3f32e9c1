// Package export renders an effect frame by frame and encodes the result as
// an animated image.
//
// There are two exporters, one per output format:
//
//   - [Lossless] keeps every rendered pixel verbatim, including partial
//     alpha, and writes an APNG.
//   - [Palette] writes a GIF. Because GIF only has one transparent palette
//     index, it thresholds alpha to fully opaque or fully transparent and
//     marks transparency with a key color.
//
// Each exporter creates its own effect context, so an export never disturbs
// a running preview or another export. Both yield to the scheduler and check
// the context every [YieldEvery] frames.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/shatter/pkg/errors"
)

// Default animation settings.
const (
	DefaultFrameCount = 60
	DefaultFPS        = 30
	DefaultOutputSize = 128
)

// OutputSizes lists the accepted square output edge lengths.
var OutputSizes = []int{64, 128, 256}

// YieldEvery is the frame cadence of cooperative yield points.
const YieldEvery = 10

// Config describes the animation to produce.
type Config struct {
	FrameCount int `json:"frame_count" toml:"frames"`
	FPS        int `json:"fps" toml:"fps"`
	OutputSize int `json:"output_size" toml:"size"`
}

// DefaultConfig returns the default animation settings.
func DefaultConfig() Config {
	return Config{
		FrameCount: DefaultFrameCount,
		FPS:        DefaultFPS,
		OutputSize: DefaultOutputSize,
	}
}

// Validate checks the frame count, frame rate and output size.
func (c Config) Validate() error {
	if c.FrameCount <= 0 {
		return errors.New(errors.ErrCodeInvalidOption, "frame count must be positive (got %d)", c.FrameCount)
	}
	if c.FPS <= 0 || c.FPS > 1000 {
		return errors.New(errors.ErrCodeInvalidOption, "fps must be between 1 and 1000 (got %d)", c.FPS)
	}
	return errors.ValidateOneOf("output size", c.OutputSize, OutputSizes...)
}

// FrameDelay is the per-frame delay in whole milliseconds, floor(1000/fps).
func FrameDelay(fps int) int {
	if fps <= 0 {
		return 0
	}
	return 1000 / fps
}

// Duration is the total play time of one loop.
func (c Config) Duration() time.Duration {
	return time.Duration(c.FrameCount*FrameDelay(c.FPS)) * time.Millisecond
}

// Format is an output container.
type Format string

// Supported formats.
const (
	FormatAPNG Format = "apng"
	FormatGIF  Format = "gif"
)

// Formats lists the accepted format names.
var Formats = []Format{FormatAPNG, FormatGIF}

// ParseFormat resolves a format name. "png" is accepted for APNG.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "", FormatAPNG, "png":
		return FormatAPNG, nil
	case FormatGIF:
		return FormatGIF, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s (must be one of: apng, gif)", s)
	}
}

// Extension is the file extension without a dot.
func (f Format) Extension() string {
	if f == FormatGIF {
		return "gif"
	}
	return "png"
}

// ContentType is the MIME type of the encoded artifact.
func (f Format) ContentType() string {
	if f == FormatGIF {
		return "image/gif"
	}
	return "image/png"
}

// Filename returns the download name for an artifact,
// "animated-effect-{size}x{size}-{unix millis}.{ext}".
func Filename(size int, f Format, now time.Time) string {
	return fmt.Sprintf("animated-effect-%dx%d-%d.%s", size, size, now.UnixMilli(), f.Extension())
}
