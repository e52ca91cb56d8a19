package terrain

import (
	"math"

	gmath "github.com/Faultbox/dreaming/pkg/math"
)

// Triangle identifies which half of a grid cell a point falls in.
type Triangle int

const (
	// TriangleUpper covers u <= 1-v: corners (0,0), (1,0), (0,1).
	TriangleUpper Triangle = iota
	// TriangleLower covers u > 1-v: corners (1,0), (1,1), (0,1).
	TriangleLower
)

// SelectTriangle returns the half of the unit cell containing (u, v).
func SelectTriangle(u, v float32) Triangle {
	if u <= 1-v {
		return TriangleUpper
	}
	return TriangleLower
}

// Corners returns the unit-square (x, z) coordinates of the triangle's corners.
func (t Triangle) Corners() [3][2]int {
	if t == TriangleUpper {
		return [3][2]int{{0, 0}, {1, 0}, {0, 1}}
	}
	return [3][2]int{{1, 0}, {1, 1}, {0, 1}}
}

// HeightAt returns the interpolated terrain height at a world position.
// Positions outside the patch return 0.
func (hf *HeightField) HeightAt(worldX, worldZ float32) float32 {
	gx, gz, u, v, ok := hf.locate(worldX-hf.originX, worldZ-hf.originZ)
	if !ok {
		return 0
	}

	var c [3]gmath.Vec3
	for i, k := range SelectTriangle(u, v).Corners() {
		c[i] = gmath.Vec3{
			X: float32(k[0]),
			Y: hf.at(gx+k[0], gz+k[1]),
			Z: float32(k[1]),
		}
	}
	return gmath.Barycentric(c[0], c[1], c[2], gmath.Vec2{X: u, Y: v})
}

// Contains reports whether HeightAt interpolates at a world position. The
// far border is outside, matching HeightAt.
func (hf *HeightField) Contains(worldX, worldZ float32) bool {
	_, _, _, _, ok := hf.locate(worldX-hf.originX, worldZ-hf.originZ)
	return ok
}

// locate maps local coordinates to a grid cell and the fractional position
// inside it. ok is false when the cell is outside [0, N-2] on either axis.
func (hf *HeightField) locate(lx, lz float32) (gx, gz int, u, v float32, ok bool) {
	s := float64(hf.cellSize)
	fx := math.Floor(float64(lx) / s)
	fz := math.Floor(float64(lz) / s)

	last := float64(hf.size - 2)
	if !(fx >= 0 && fx <= last && fz >= 0 && fz <= last) {
		return 0, 0, 0, 0, false
	}

	gx, gz = int(fx), int(fz)
	u = float32((float64(lx) - fx*s) / s)
	v = float32((float64(lz) - fz*s) / s)
	return gx, gz, u, v, true
}
