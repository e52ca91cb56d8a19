package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatRows(n int, h float32) [][]float32 {
	rows := make([][]float32, n)
	for x := range rows {
		rows[x] = make([]float32, n)
		for z := range rows[x] {
			rows[x][z] = h
		}
	}
	return rows
}

func vertexAt(m *Mesh, idx int) [3]float32 {
	return [3]float32{m.Positions[idx*3], m.Positions[idx*3+1], m.Positions[idx*3+2]}
}

func normalAt(m *Mesh, idx int) [3]float32 {
	return [3]float32{m.Normals[idx*3], m.Normals[idx*3+1], m.Normals[idx*3+2]}
}

func TestBuildMeshCounts(t *testing.T) {
	for _, n := range []int{2, 3, 7, 16} {
		hf := newTestField(t, flatRows(n, 0), DefaultOptions())
		m := BuildMesh(hf, MeshOptions{})

		assert.Equal(t, n*n, m.VertexCount(), "N=%d", n)
		assert.Len(t, m.Normals, n*n*3)
		assert.Len(t, m.UVs, n*n*2)
		assert.Len(t, m.Indices, 6*(n-1)*(n-1))
		assert.Equal(t, 2*(n-1)*(n-1), m.TriangleCount())

		for _, idx := range m.Indices {
			assert.Less(t, int(idx), n*n)
		}
	}
}

func TestBuildMeshVertexLayout(t *testing.T) {
	rows := [][]float32{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	}
	hf := newTestField(t, rows, DefaultOptions())
	m := BuildMesh(hf, MeshOptions{})

	assert.Equal(t, [3]float32{0, 1, 0}, vertexAt(m, 0))

	// Vertex (j, i) at flat index i*N+j: j advances along X, i along Z.
	assert.Equal(t, [3]float32{400, 4, 0}, vertexAt(m, 1))
	assert.Equal(t, [3]float32{0, 2, 400}, vertexAt(m, 3))
	assert.Equal(t, [3]float32{800, 9, 800}, vertexAt(m, 8))

	assert.Equal(t, []float32{0, 0}, m.UVs[0:2])
	assert.Equal(t, []float32{0.5, 0}, m.UVs[2:4])
	assert.Equal(t, []float32{1, 1}, m.UVs[16:18])

	assert.Equal(t, [3]float32{0, 1, 0}, m.Bounds.Min)
	assert.Equal(t, [3]float32{800, 9, 800}, m.Bounds.Max)
	assert.Equal(t, [3]float32{400, 5, 400}, m.Bounds.Center())
}

func TestBuildMeshIndexOrder(t *testing.T) {
	hf := newTestField(t, flatRows(3, 0), DefaultOptions())
	m := BuildMesh(hf, MeshOptions{})

	// First quad: topLeft=0, topRight=1, bottomLeft=3, bottomRight=4.
	assert.Equal(t, []uint32{0, 3, 1, 1, 3, 4}, m.Indices[0:6])
	// Quad (gx=1, gz=1): topLeft=4.
	assert.Equal(t, []uint32{4, 7, 5, 5, 7, 8}, m.Indices[18:24])
}

func TestBuildMeshWindingFacesUp(t *testing.T) {
	hf := newTestField(t, [][]float32{
		{0, 3, 1},
		{2, 9, 4},
		{1, 0, 2},
	}, Options{WorldSize: 100, MaxHeight: 45})
	m := BuildMesh(hf, MeshOptions{})

	for tri := 0; tri < m.TriangleCount(); tri++ {
		a := vertexAt(m, int(m.Indices[tri*3]))
		b := vertexAt(m, int(m.Indices[tri*3+1]))
		c := vertexAt(m, int(m.Indices[tri*3+2]))

		e1 := [3]float32{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
		e2 := [3]float32{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
		crossY := e1[2]*e2[0] - e1[0]*e2[2]
		assert.Greater(t, crossY, float32(0), "triangle %d is not counter-clockwise from +Y", tri)
	}
}

func TestBuildMeshFlatNormals(t *testing.T) {
	hf := newTestField(t, flatRows(4, 0), DefaultOptions())
	m := BuildMesh(hf, MeshOptions{})

	for i := range m.VertexCount() {
		n := normalAt(m, i)
		assert.InDelta(t, 0, n[0], 1e-6)
		assert.InDelta(t, 1, n[1], 1e-6)
		assert.InDelta(t, 0, n[2], 1e-6)
	}
}

func TestBuildMeshNormalSlope(t *testing.T) {
	// Height rises with X: h = 2*x.
	rows := [][]float32{
		{0, 0, 0},
		{2, 2, 2},
		{4, 4, 4},
	}
	hf := newTestField(t, rows, DefaultOptions())
	m := BuildMesh(hf, MeshOptions{})

	// Centre vertex: (hL-hR, 2, hD-hU) = (-4, 2, 0) normalised.
	n := normalAt(m, 4)
	assert.InDelta(t, -4/4.472136, n[0], 1e-5)
	assert.InDelta(t, 2/4.472136, n[1], 1e-5)
	assert.InDelta(t, 0, n[2], 1e-6)
}

func TestBuildMeshEdgePolicies(t *testing.T) {
	hf := newTestField(t, flatRows(4, 10), DefaultOptions())

	zero := BuildMesh(hf, MeshOptions{Edge: EdgeZero})
	clamp := BuildMesh(hf, MeshOptions{Edge: EdgeClamp})
	n := hf.Size()

	for i := range n {
		for j := range n {
			idx := i*n + j
			border := i == 0 || j == 0 || i == n-1 || j == n-1
			zn, cn := normalAt(zero, idx), normalAt(clamp, idx)

			assert.Equal(t, [3]float32{0, 1, 0}, cn, "clamp normal at (%d, %d)", j, i)
			if border {
				assert.NotEqual(t, cn, zn, "zero policy should tilt border normal at (%d, %d)", j, i)
			} else {
				assert.Equal(t, cn, zn, "interior normal at (%d, %d)", j, i)
			}
		}
	}

	// Positions and indices never depend on the edge policy.
	assert.Equal(t, zero.Positions, clamp.Positions)
	assert.Equal(t, zero.Indices, clamp.Indices)
}

func TestBuildMeshZeroEdgeValue(t *testing.T) {
	hf := newTestField(t, flatRows(3, 10), DefaultOptions())
	m := BuildMesh(hf, MeshOptions{Edge: EdgeZero})

	// Vertex (0, 1): hL reads 0 outside the grid, hR = 10, hD = hU = 10.
	n := normalAt(m, 3)
	require.InDelta(t, -10/10.198039, n[0], 1e-5)
	assert.InDelta(t, 2/10.198039, n[1], 1e-5)
	assert.InDelta(t, 0, n[2], 1e-6)
}
