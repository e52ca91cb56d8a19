package terrain

import (
	"fmt"
	"math"
)

// Edge selects how normals sample neighbours past the grid border.
type Edge int

const (
	// EdgeZero treats samples outside the grid as height 0.
	EdgeZero Edge = iota
	// EdgeClamp uses the nearest sample inside the grid.
	EdgeClamp
)

// ParseEdge maps a config name to an Edge.
func ParseEdge(name string) (Edge, error) {
	switch name {
	case "", "zero":
		return EdgeZero, nil
	case "clamp":
		return EdgeClamp, nil
	}
	return 0, fmt.Errorf("%w: unknown edge policy %q", ErrInvalidOptions, name)
}

// MeshOptions configures mesh generation.
type MeshOptions struct {
	Edge Edge
}

// BuildMesh creates the render mesh for a height field. Vertex (j, i) sits at
// flat index i*N+j and local position (j*s, h(j,i), i*s) with s the cell size.
func BuildMesh(hf *HeightField, opts MeshOptions) *Mesh {
	n := hf.size
	last := float32(n - 1)

	positions := make([]float32, 0, n*n*3)
	normals := make([]float32, 0, n*n*3)
	uvs := make([]float32, 0, n*n*2)

	bounds := Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}

	for i := range n {
		for j := range n {
			pos := [3]float32{
				float32(j) / last * hf.worldSize,
				hf.at(j, i),
				float32(i) / last * hf.worldSize,
			}
			updateBounds(&bounds, pos)
			positions = append(positions, pos[0], pos[1], pos[2])

			nx, ny, nz := hf.normal(j, i, opts.Edge)
			normals = append(normals, nx, ny, nz)

			uvs = append(uvs, float32(j)/last, float32(i)/last)
		}
	}

	indices := make([]uint32, 0, 6*(n-1)*(n-1))
	for gz := range n - 1 {
		for gx := range n - 1 {
			topLeft := uint32(gz*n + gx)
			topRight := topLeft + 1
			bottomLeft := uint32((gz+1)*n + gx)
			bottomRight := bottomLeft + 1
			indices = append(indices,
				topLeft, bottomLeft, topRight,
				topRight, bottomLeft, bottomRight,
			)
		}
	}

	return &Mesh{
		Positions: positions,
		Normals:   normals,
		UVs:       uvs,
		Indices:   indices,
		Bounds:    bounds,
	}
}

// normal estimates the surface normal at grid (x, z) by central differences.
func (hf *HeightField) normal(x, z int, edge Edge) (nx, ny, nz float32) {
	hL := hf.sample(x-1, z, edge)
	hR := hf.sample(x+1, z, edge)
	hD := hf.sample(x, z-1, edge)
	hU := hf.sample(x, z+1, edge)

	nx, ny, nz = hL-hR, 2, hD-hU
	length := float32(math.Sqrt(float64(nx*nx + ny*ny + nz*nz)))
	return nx / length, ny / length, nz / length
}

// sample reads grid (x, z), resolving out-of-range indices per edge policy.
func (hf *HeightField) sample(x, z int, edge Edge) float32 {
	inside := x >= 0 && z >= 0 && x < hf.size && z < hf.size
	if inside {
		return hf.at(x, z)
	}
	if edge == EdgeZero {
		return 0
	}
	x = min(max(x, 0), hf.size-1)
	z = min(max(z, 0), hf.size-1)
	return hf.at(x, z)
}

func updateBounds(b *Bounds, p [3]float32) {
	for i := range 3 {
		b.Min[i] = min(b.Min[i], p[i])
		b.Max[i] = max(b.Max[i], p[i])
	}
}
