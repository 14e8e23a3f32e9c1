package source

import (
	"image"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/matzehuels/shatter/pkg/errors"
)

// Kernel names a resampling filter for Letterbox.
type Kernel string

// Supported kernels.
const (
	KernelNearest    Kernel = "nearest"
	KernelBilinear   Kernel = "bilinear"
	KernelCatmullRom Kernel = "catmullrom"
)

// DefaultKernel is used when no kernel is named.
const DefaultKernel = KernelBilinear

// Kernels lists the accepted kernel names.
var Kernels = []Kernel{KernelNearest, KernelBilinear, KernelCatmullRom}

// ParseKernel resolves a kernel name, case-insensitively. Empty means
// DefaultKernel.
func ParseKernel(s string) (Kernel, error) {
	if s == "" {
		return DefaultKernel, nil
	}
	k := Kernel(strings.ToLower(s))
	if err := errors.ValidateOneOf("resample kernel", k, Kernels...); err != nil {
		return "", err
	}
	return k, nil
}

func (k Kernel) interpolator() xdraw.Interpolator {
	switch k {
	case KernelNearest:
		return xdraw.NearestNeighbor
	case KernelCatmullRom:
		return xdraw.CatmullRom
	default:
		return xdraw.BiLinear
	}
}

// Letterbox scales img to fit inside a size×size square, preserving aspect
// ratio, centered with fractional offsets on a fully transparent background.
func Letterbox(img image.Image, size int, k Kernel) (*image.RGBA, error) {
	if size <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidOption, "output size must be positive (got %d)", size)
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, errors.New(errors.ErrCodeDecode, "image has no pixels")
	}

	w, h := float64(b.Dx()), float64(b.Dy())
	s := float64(size)
	scale := min(s/w, s/h)
	ox := (s - w*scale) / 2
	oy := (s - h*scale) / 2

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	s2d := f64.Aff3{
		scale, 0, ox - float64(b.Min.X)*scale,
		0, scale, oy - float64(b.Min.Y)*scale,
	}
	k.interpolator().Transform(dst, s2d, img, b, xdraw.Over, nil)
	return dst, nil
}
