package shatter

// Triangle is one piece of the shattered image.
//
// Points and OriginalPoints hold x1, y1, x2, y2, x3, y3. They are arrays so
// that copying a Triangle copies its vertices. At all times
// Points[i] == OriginalPoints[i] + (center - original center) for the
// matching axis.
type Triangle struct {
	Points         [6]float64
	OriginalPoints [6]float64

	CenterX, CenterY                 float64
	OriginalCenterX, OriginalCenterY float64

	VelocityX, VelocityY float64

	Rotation      float64 // radians, applied about the current centroid
	RotationSpeed float64 // radians per frame
}

// Area returns the unsigned area of the triangle's current vertices.
func (t Triangle) Area() float64 {
	p := t.Points
	a := (p[2]-p[0])*(p[5]-p[1]) - (p[4]-p[0])*(p[3]-p[1])
	if a < 0 {
		a = -a
	}
	return a / 2
}
