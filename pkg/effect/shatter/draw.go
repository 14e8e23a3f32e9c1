package shatter

import (
	"image"

	"github.com/matzehuels/shatter/pkg/surface"
)

// DrawTriangle paints the part of src under t's rest shape at t's current
// position and rotation.
//
// The canvas transform maps rest space to screen space: move the rest
// centroid to the origin, rotate, then move to the current centroid. The
// clip and the image are both expressed in rest coordinates.
func DrawTriangle(dst *surface.Canvas, src image.Image, t Triangle) {
	dst.Push()
	placeShard(dst, t)

	p := t.OriginalPoints
	dst.MoveTo(p[0], p[1])
	dst.LineTo(p[2], p[3])
	dst.LineTo(p[4], p[5])
	dst.ClosePath()
	dst.Clip()

	dst.DrawImage(src, 0, 0)

	// Pop keeps the current clip mask, so drop it explicitly.
	dst.ResetClip()
	dst.Pop()
}

// placeShard multiplies dst's transform so rest coordinates of t land at its
// current pose. The rest centroid maps onto the current centroid.
func placeShard(dst *surface.Canvas, t Triangle) {
	dst.Translate(t.CenterX, t.CenterY)
	dst.Rotate(t.Rotation)
	dst.Translate(-t.OriginalCenterX, -t.OriginalCenterY)
}
