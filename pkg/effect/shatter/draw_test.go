package shatter

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"testing"

	"github.com/matzehuels/shatter/pkg/surface"
)

func TestDrawTriangle(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 32, 32))
	draw.Draw(src, src.Bounds(), image.NewUniform(color.RGBA{R: 255, A: 255}), image.Point{}, draw.Src)

	rest := Triangle{
		Points:          [6]float64{0, 0, 32, 0, 0, 32},
		OriginalPoints:  [6]float64{0, 0, 32, 0, 0, 32},
		CenterX:         32.0 / 3,
		CenterY:         32.0 / 3,
		OriginalCenterX: 32.0 / 3,
		OriginalCenterY: 32.0 / 3,
	}
	moved := rest
	moved.CenterY += 10
	for i := 1; i < 6; i += 2 {
		moved.Points[i] += 10
	}

	tests := []struct {
		name    string
		tri     Triangle
		painted []image.Point
		empty   []image.Point
	}{
		{"at rest", rest, []image.Point{{4, 4}, {12, 4}}, []image.Point{{28, 28}, {20, 20}}},
		{"translated down", moved, []image.Point{{4, 14}, {12, 14}}, []image.Point{{4, 4}, {28, 28}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst, err := surface.New(32, 32)
			if err != nil {
				t.Fatal(err)
			}
			DrawTriangle(dst, src, tt.tri)
			img := dst.RGBA()
			for _, p := range tt.painted {
				if c := img.RGBAAt(p.X, p.Y); c.R != 255 || c.A != 255 {
					t.Errorf("pixel %v = %v, want opaque red", p, c)
				}
			}
			for _, p := range tt.empty {
				if c := img.RGBAAt(p.X, p.Y); c.A != 0 {
					t.Errorf("pixel %v = %v, want transparent", p, c)
				}
			}
		})
	}
}

func TestDrawTriangleDropsClip(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 16, 16))
	draw.Draw(src, src.Bounds(), image.NewUniform(color.RGBA{B: 255, A: 255}), image.Point{}, draw.Src)
	tri := Triangle{
		Points:          [6]float64{0, 0, 8, 0, 0, 8},
		OriginalPoints:  [6]float64{0, 0, 8, 0, 0, 8},
		CenterX:         8.0 / 3,
		CenterY:         8.0 / 3,
		OriginalCenterX: 8.0 / 3,
		OriginalCenterY: 8.0 / 3,
	}

	dst, err := surface.New(16, 16)
	if err != nil {
		t.Fatal(err)
	}
	DrawTriangle(dst, src, tri)
	dst.DrawImage(src, 0, 0)
	if c := dst.RGBA().RGBAAt(14, 14); c.A != 255 {
		t.Errorf("drawing after DrawTriangle should not be clipped, got %v", c)
	}
}

// shard returns a rest triangle with vertices (0,0), (size,0), (0,size)
// moved so its centroid sits at (cx, cy) and rotated by rot.
func shard(size, cx, cy, rot float64) Triangle {
	rest := [6]float64{0, 0, size, 0, 0, size}
	c0 := size / 3
	t := Triangle{
		OriginalPoints:  rest,
		CenterX:         cx,
		CenterY:         cy,
		OriginalCenterX: c0,
		OriginalCenterY: c0,
		Rotation:        rot,
	}
	for i := 0; i < 6; i += 2 {
		t.Points[i] = rest[i] + cx - c0
		t.Points[i+1] = rest[i+1] + cy - c0
	}
	return t
}

func TestPlaceShard(t *testing.T) {
	tests := []struct {
		name string
		tri  Triangle
		rest [2]float64
		want [2]float64
	}{
		{"translation only", shard(30, 40, 20, 0), [2]float64{15, 10}, [2]float64{45, 20}},
		{"quarter turn", shard(30, 40, 20, math.Pi/2), [2]float64{15, 10}, [2]float64{40, 25}},
		{"half turn", shard(30, 40, 20, math.Pi), [2]float64{15, 10}, [2]float64{35, 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst, err := surface.New(64, 64)
			if err != nil {
				t.Fatal(err)
			}
			dst.Push()
			placeShard(dst, tt.tri)
			cx, cy := dst.TransformPoint(tt.tri.OriginalCenterX, tt.tri.OriginalCenterY)
			px, py := dst.TransformPoint(tt.rest[0], tt.rest[1])
			dst.Pop()

			if math.Abs(cx-tt.tri.CenterX) > 1e-9 || math.Abs(cy-tt.tri.CenterY) > 1e-9 {
				t.Errorf("rest centroid maps to (%v, %v), want current centroid (%v, %v)", cx, cy, tt.tri.CenterX, tt.tri.CenterY)
			}
			if math.Abs(px-tt.want[0]) > 1e-9 || math.Abs(py-tt.want[1]) > 1e-9 {
				t.Errorf("rest point %v maps to (%v, %v), want %v", tt.rest, px, py, tt.want)
			}
		})
	}
}

func TestDrawTriangleRotated(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	// Red only where the rest triangle samples, so a shard painted red
	// proves it took its pixels from the rest region.
	src := image.NewRGBA(image.Rect(0, 0, 64, 64))
	draw.Draw(src, src.Bounds(), image.NewUniform(blue), image.Point{}, draw.Src)
	draw.Draw(src, image.Rect(0, 0, 32, 32), image.NewUniform(red), image.Point{}, draw.Src)

	tests := []struct {
		name    string
		tri     Triangle
		painted []image.Point
		empty   []image.Point
	}{
		{
			// Rest point p lands at (56-px, 56-py).
			name:    "half turn",
			tri:     shard(24, 48, 48, math.Pi),
			painted: []image.Point{{52, 52}, {44, 52}, {52, 44}},
			empty:   []image.Point{{4, 4}, {12, 4}, {36, 36}},
		},
		{
			// Rest point p lands at (48-(py-8), 16+(px-8)).
			name:    "quarter turn",
			tri:     shard(24, 48, 16, math.Pi/2),
			painted: []image.Point{{52, 12}, {52, 20}, {44, 12}},
			empty:   []image.Point{{4, 4}, {12, 4}, {36, 36}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst, err := surface.New(64, 64)
			if err != nil {
				t.Fatal(err)
			}
			DrawTriangle(dst, src, tt.tri)
			img := dst.RGBA()
			for _, p := range tt.painted {
				if c := img.RGBAAt(p.X, p.Y); c.R < 250 || c.B > 5 || c.A < 250 {
					t.Errorf("pixel %v = %v, want opaque red from the rest region", p, c)
				}
			}
			for _, p := range tt.empty {
				if c := img.RGBAAt(p.X, p.Y); c.A != 0 {
					t.Errorf("pixel %v = %v, want transparent", p, c)
				}
			}
		})
	}
}
