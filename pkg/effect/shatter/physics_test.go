package shatter

import (
	"math"
	"testing"
)

func TestStep(t *testing.T) {
	in := Triangle{
		Points:          [6]float64{0, 0, 3, 0, 0, 3},
		OriginalPoints:  [6]float64{0, 0, 3, 0, 0, 3},
		CenterX:         1,
		CenterY:         1,
		OriginalCenterX: 1,
		OriginalCenterY: 1,
		VelocityX:       2,
		VelocityY:       -1,
		RotationSpeed:   0.1,
	}
	opts := Options{Gravity: 0.5}

	got := Step(in, opts, 2)

	// vy' = -1 + 0.5*2 = 0; so the y position does not change.
	if got.VelocityY != 0 {
		t.Errorf("VelocityY = %v, want 0", got.VelocityY)
	}
	if got.VelocityX != 2 {
		t.Errorf("VelocityX = %v, want 2", got.VelocityX)
	}
	if got.CenterX != 5 || got.CenterY != 1 {
		t.Errorf("center = (%v,%v), want (5,1)", got.CenterX, got.CenterY)
	}
	if want := [6]float64{4, 0, 7, 0, 4, 3}; got.Points != want {
		t.Errorf("Points = %v, want %v", got.Points, want)
	}
	if math.Abs(got.Rotation-0.2) > 1e-12 {
		t.Errorf("Rotation = %v, want 0.2", got.Rotation)
	}
	if got.OriginalPoints != in.OriginalPoints || got.OriginalCenterX != 1 {
		t.Error("rest state changed")
	}
	if in.CenterX != 1 || in.Points[0] != 0 {
		t.Error("Step mutated its input")
	}
}

func TestStepKeepsVerticesOnCentroid(t *testing.T) {
	tris, err := Generate(64, 64, DefaultOptions(), NewRand(5))
	if err != nil {
		t.Fatal(err)
	}
	opts := DefaultOptions()
	for range 50 {
		tris = StepAll(tris, opts, 1)
	}
	for i, tr := range tris {
		dx := tr.CenterX - tr.OriginalCenterX
		dy := tr.CenterY - tr.OriginalCenterY
		for j := 0; j < 6; j += 2 {
			if math.Abs(tr.Points[j]-(tr.OriginalPoints[j]+dx)) > 1e-9 ||
				math.Abs(tr.Points[j+1]-(tr.OriginalPoints[j+1]+dy)) > 1e-9 {
				t.Fatalf("triangle %d vertex %d drifted from centroid offset", i, j/2)
			}
		}
	}
}

func TestStepAllDoesNotAlias(t *testing.T) {
	in := []Triangle{{VelocityX: 1}}
	out := StepAll(in, Options{Gravity: 1}, 1)
	if in[0].CenterX != 0 || in[0].VelocityY != 0 {
		t.Error("StepAll mutated its input")
	}
	if out[0].CenterX != 1 || out[0].VelocityY != 1 {
		t.Errorf("StepAll result = %+v", out[0])
	}
}
