package shatter

// Step advances t by dt frames. Gravity updates the vertical velocity
// before the position (semi-implicit Euler); vertices follow the centroid.
func Step(t Triangle, opts Options, dt float64) Triangle {
	vy := t.VelocityY + opts.Gravity*dt
	cx := t.CenterX + t.VelocityX*dt
	cy := t.CenterY + vy*dt
	dx, dy := cx-t.CenterX, cy-t.CenterY

	for i := 0; i < len(t.Points); i += 2 {
		t.Points[i] += dx
		t.Points[i+1] += dy
	}
	t.CenterX, t.CenterY = cx, cy
	t.VelocityY = vy
	t.Rotation += t.RotationSpeed * dt
	return t
}

// StepAll returns a new slice with every triangle advanced by dt.
func StepAll(ts []Triangle, opts Options, dt float64) []Triangle {
	out := make([]Triangle, len(ts))
	for i, t := range ts {
		out[i] = Step(t, opts, dt)
	}
	return out
}
