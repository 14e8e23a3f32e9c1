// Package source turns an uploaded file into the square RGBA texture the
// effect renders from.
//
// The steps mirror what happens between a user picking a file and the first
// preview frame:
//
//  1. [Validate] rejects anything that is not an image or exceeds
//     [MaxUploadBytes].
//  2. [Decode] sniffs and decodes PNG, JPEG, GIF, BMP and WebP input no
//     larger than [MaxImageSide] on either side.
//  3. [Letterbox] scales the image to fit a size×size square, centered on a
//     transparent background.
//
// [ThresholdAlpha] and [ChromaKey] are the pixel passes used by the palette
// exporter, which can only express fully opaque or fully transparent pixels.
package source

import (
	"bytes"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/matzehuels/shatter/pkg/errors"
)

// MaxUploadBytes is the largest accepted input file.
const MaxUploadBytes = 5 << 20

// MaxImageSide bounds each decoded dimension. Compressed formats can declare
// far more pixels than their byte size suggests.
const MaxImageSide = 8192

// Validate checks an upload's declared content type and size.
func Validate(contentType string, size int64) error {
	if !strings.HasPrefix(contentType, "image/") {
		return errors.New(errors.ErrCodeUnsupportedType, "please upload an image file (got %s)", contentType)
	}
	if size > MaxUploadBytes {
		return errors.New(errors.ErrCodeFileTooLarge, "file size must be less than 5MB (got %d bytes)", size)
	}
	return nil
}

// Image is a decoded upload.
type Image struct {
	*image.RGBA
	Format      string // decoder name, e.g. "png"
	ContentType string // sniffed MIME type
}

// Decode validates and decodes raw upload bytes.
func Decode(data []byte) (*Image, error) {
	contentType := http.DetectContentType(data)
	if err := Validate(contentType, int64(len(data))); err != nil {
		return nil, err
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "decode %s", contentType)
	}
	if cfg.Width > MaxImageSide || cfg.Height > MaxImageSide {
		return nil, errors.New(errors.ErrCodeDecode, "image is %dx%d, at most %dx%d is supported",
			cfg.Width, cfg.Height, MaxImageSide, MaxImageSide)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "decode %s", contentType)
	}
	if img.Bounds().Empty() {
		return nil, errors.New(errors.ErrCodeDecode, "image has no pixels")
	}
	return &Image{RGBA: ToRGBA(img), Format: format, ContentType: contentType}, nil
}

// ToRGBA returns img as an *image.RGBA anchored at the origin, converting if
// necessary. An *image.RGBA already at the origin is returned unchanged.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
