package renderer

import (
	"fmt"

	"github.com/Faultbox/dreaming/pkg/math"
)

// Geometry is an indexed triangle list with per-vertex normals.
type Geometry struct {
	Positions []float32
	Normals   []float32
	Indices   []uint32
}

// Primitive returns the geometry for a named primitive.
func Primitive(name string) (Geometry, error) {
	switch name {
	case "cube":
		return Cube(), nil
	case "pyramid":
		return Pyramid(), nil
	}
	return Geometry{}, fmt.Errorf("unknown primitive %q", name)
}

// addFace appends a flat-shaded polygon. corners must be counter-clockwise
// seen from outside.
func (g *Geometry) addFace(corners ...math.Vec3) {
	n := corners[1].Sub(corners[0]).Cross(corners[2].Sub(corners[0])).Normalize()
	base := uint32(len(g.Positions) / 3)
	for _, c := range corners {
		g.Positions = append(g.Positions, c.X, c.Y, c.Z)
		g.Normals = append(g.Normals, n.X, n.Y, n.Z)
	}
	for i := uint32(1); i+1 < uint32(len(corners)); i++ {
		g.Indices = append(g.Indices, base, base+i, base+i+1)
	}
}

// Cube returns a unit cube resting on y=0, centred on x and z.
func Cube() Geometry {
	v := func(x, y, z float32) math.Vec3 { return math.Vec3{X: x * 0.5, Y: y, Z: z * 0.5} }
	var g Geometry
	g.addFace(v(-1, 0, 1), v(1, 0, 1), v(1, 1, 1), v(-1, 1, 1))     // +Z
	g.addFace(v(1, 0, -1), v(-1, 0, -1), v(-1, 1, -1), v(1, 1, -1)) // -Z
	g.addFace(v(1, 0, 1), v(1, 0, -1), v(1, 1, -1), v(1, 1, 1))     // +X
	g.addFace(v(-1, 0, -1), v(-1, 0, 1), v(-1, 1, 1), v(-1, 1, -1)) // -X
	g.addFace(v(-1, 1, 1), v(1, 1, 1), v(1, 1, -1), v(-1, 1, -1))   // +Y
	g.addFace(v(-1, 0, -1), v(1, 0, -1), v(1, 0, 1), v(-1, 0, 1))   // -Y
	return g
}

// Pyramid returns a square pyramid of height 2 on a unit base at y=0.
func Pyramid() Geometry {
	apex := math.Vec3{Y: 2}
	a := math.Vec3{X: -0.5, Z: 0.5}
	b := math.Vec3{X: 0.5, Z: 0.5}
	c := math.Vec3{X: 0.5, Z: -0.5}
	d := math.Vec3{X: -0.5, Z: -0.5}

	var g Geometry
	g.addFace(a, b, apex)
	g.addFace(b, c, apex)
	g.addFace(c, d, apex)
	g.addFace(d, a, apex)
	g.addFace(d, c, b, a)
	return g
}
