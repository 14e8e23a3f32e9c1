package shatter

import (
	"math"
	"math/rand/v2"

	"github.com/fogleman/delaunay"

	"github.com/matzehuels/shatter/pkg/errors"
)

const (
	// EdgeSubdivisions is the number of segments each image edge is split
	// into; every edge contributes EdgeSubdivisions+1 points.
	EdgeSubdivisions = 10

	// MinInteriorPoints is the floor on random interior points.
	MinInteriorPoints = 20

	// burstSpeed is the outward speed at SpreadDirection 100.
	burstSpeed = 5.0
	// velocityJitter is the width of the uniform jitter added to each axis.
	velocityJitter = 2.0
	// spinJitter is the width of the uniform rotation speed range.
	spinJitter = 0.2
)

// NewRand returns the generator used for a given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// NewSeed picks a random non-zero seed.
func NewSeed() uint64 {
	for {
		if s := rand.Uint64(); s != 0 {
			return s
		}
	}
}

// Generate cuts a width×height rectangle into triangles. The triangles tile
// the rectangle exactly; degenerate slivers are kept.
func Generate(width, height float64, opts Options, rng *rand.Rand) ([]Triangle, error) {
	if !(width > 0) || !(height > 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "cannot shatter a %vx%v image", width, height)
	}

	points := samplePoints(width, height, opts.PieceCount, rng)
	tri, err := delaunay.Triangulate(points)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "triangulate %d points", len(points))
	}

	spread := opts.SpreadDirection / 100
	out := make([]Triangle, 0, len(tri.Triangles)/3)
	for i := 0; i+2 < len(tri.Triangles); i += 3 {
		a := points[tri.Triangles[i]]
		b := points[tri.Triangles[i+1]]
		c := points[tri.Triangles[i+2]]

		cx := (a.X + b.X + c.X) / 3
		cy := (a.Y + b.Y + c.Y) / 3
		angle := math.Atan2(cy-height/2, cx-width/2)

		t := Triangle{
			Points:          [6]float64{a.X, a.Y, b.X, b.Y, c.X, c.Y},
			CenterX:         cx,
			CenterY:         cy,
			OriginalCenterX: cx,
			OriginalCenterY: cy,
		}
		t.OriginalPoints = t.Points
		t.VelocityX = math.Cos(angle)*spread*burstSpeed + (rng.Float64()-0.5)*velocityJitter
		t.VelocityY = math.Sin(angle)*spread*burstSpeed + (rng.Float64()-0.5)*velocityJitter
		t.RotationSpeed = (rng.Float64() - 0.5) * spinJitter
		out = append(out, t)
	}
	return out, nil
}

// samplePoints returns the edge points (corners appear twice, once per
// edge) followed by the random interior points.
func samplePoints(width, height float64, pieceCount int, rng *rand.Rand) []delaunay.Point {
	interior := max(pieceCount-4*EdgeSubdivisions, MinInteriorPoints)
	points := make([]delaunay.Point, 0, 4*(EdgeSubdivisions+1)+interior)

	for i := 0; i <= EdgeSubdivisions; i++ {
		f := float64(i) / EdgeSubdivisions
		points = append(points,
			delaunay.Point{X: width * f, Y: 0},
			delaunay.Point{X: width * f, Y: height},
			delaunay.Point{X: 0, Y: height * f},
			delaunay.Point{X: width, Y: height * f},
		)
	}
	for range interior {
		x := rng.Float64() * width
		y := rng.Float64() * height
		points = append(points, delaunay.Point{X: x, Y: y})
	}
	return points
}
