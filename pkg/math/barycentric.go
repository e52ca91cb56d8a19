package math

// Barycentric interpolates the Y component of triangle p1, p2, p3 at the
// point pos, where pos.X is matched against the vertices' X and pos.Y against
// their Z. A degenerate triangle yields p1.Y.
func Barycentric(p1, p2, p3 Vec3, pos Vec2) float32 {
	det := (p2.Z-p3.Z)*(p1.X-p3.X) + (p3.X-p2.X)*(p1.Z-p3.Z)
	if det == 0 {
		return p1.Y
	}
	l1 := ((p2.Z-p3.Z)*(pos.X-p3.X) + (p3.X-p2.X)*(pos.Y-p3.Z)) / det
	l2 := ((p3.Z-p1.Z)*(pos.X-p3.X) + (p1.X-p3.X)*(pos.Y-p3.Z)) / det
	l3 := 1 - l1 - l2
	return l1*p1.Y + l2*p2.Y + l3*p3.Y
}
