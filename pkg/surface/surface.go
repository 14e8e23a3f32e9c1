// Package surface provides the 2D raster drawing surface that effects render
// onto.
//
// A Canvas is a thin wrapper around a fogleman/gg context. The gg context
// supplies the drawing model effects rely on (a transform stack with
// Push/Pop, path clipping, image drawing through the current transform);
// Canvas adds the whole-surface operations the frame loop needs: erasing to
// transparent, filling with a background color, compositing a source image
// and reading or replacing the raw premultiplied RGBA pixel buffer.
package surface

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/matzehuels/shatter/pkg/errors"
)

// Canvas is a drawable RGBA surface. The embedded gg.Context is exported so
// effects can use its transform and clip operations directly.
type Canvas struct {
	*gg.Context
}

// New acquires a width×height canvas. It fails with ErrCodeSurface when the
// dimensions cannot back a surface.
func New(width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New(errors.ErrCodeSurface, "cannot acquire %dx%d surface", width, height)
	}
	return &Canvas{Context: gg.NewContext(width, height)}, nil
}

// FromRGBA wraps an existing RGBA image. Drawing on the canvas mutates img.
func FromRGBA(img *image.RGBA) (*Canvas, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, errors.New(errors.ErrCodeSurface, "cannot acquire surface from empty image")
	}
	return &Canvas{Context: gg.NewContextForRGBA(img)}, nil
}

// RGBA returns the backing pixel buffer.
func (c *Canvas) RGBA() *image.RGBA {
	return c.Image().(*image.RGBA)
}

// Bounds returns the canvas rectangle.
func (c *Canvas) Bounds() image.Rectangle {
	return c.RGBA().Bounds()
}

// Erase sets every pixel to fully transparent, ignoring any clip.
func (c *Canvas) Erase() {
	draw.Draw(c.RGBA(), c.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

// FillColor replaces every pixel with col, ignoring any clip.
func (c *Canvas) FillColor(col color.Color) {
	draw.Draw(c.RGBA(), c.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// DrawSource composites src over the canvas, stretched to cover it. A source
// with the canvas's own size is composited pixel for pixel.
func (c *Canvas) DrawSource(src image.Image) {
	dst := c.RGBA()
	sb := src.Bounds()
	if sb.Size() == dst.Bounds().Size() {
		draw.Draw(dst, dst.Bounds(), src, sb.Min, draw.Over)
		return
	}
	db := dst.Bounds()
	sx := float64(db.Dx()) / float64(sb.Dx())
	sy := float64(db.Dy()) / float64(sb.Dy())
	s2d := f64.Aff3{
		sx, 0, float64(db.Min.X) - float64(sb.Min.X)*sx,
		0, sy, float64(db.Min.Y) - float64(sb.Min.Y)*sy,
	}
	xdraw.BiLinear.Transform(dst, s2d, src, sb, xdraw.Over, nil)
}

// Snapshot returns a copy of the current pixel buffer.
func (c *Canvas) Snapshot() *image.RGBA {
	src := c.RGBA()
	out := image.NewRGBA(src.Bounds())
	copy(out.Pix, src.Pix)
	return out
}

// Replace overwrites the canvas pixels with img, which must have the same
// bounds as the canvas.
func (c *Canvas) Replace(img *image.RGBA) error {
	dst := c.RGBA()
	if img.Bounds() != dst.Bounds() {
		return errors.New(errors.ErrCodeSurface, "replace: bounds %v do not match surface %v", img.Bounds(), dst.Bounds())
	}
	copy(dst.Pix, img.Pix)
	return nil
}
