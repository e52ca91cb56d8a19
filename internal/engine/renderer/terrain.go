package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/dreaming/internal/engine/shader"
	"github.com/Faultbox/dreaming/internal/engine/terrain"
	"github.com/Faultbox/dreaming/pkg/math"
)

// terrainPass draws the static terrain mesh.
type terrainPass struct {
	program *shader.Program

	vao        uint32
	buffers    [4]uint32 // positions, normals, uvs, indices
	indexCount int32
	model      math.Mat4
	minHeight  float32
	maxHeight  float32
}

func newTerrainPass() (*terrainPass, error) {
	program, err := shader.NewProgram(terrainVertexShader, terrainFragmentShader)
	if err != nil {
		return nil, err
	}
	return &terrainPass{program: program}, nil
}

// upload replaces the mesh. Each attribute lives in its own buffer.
func (tp *terrainPass) upload(mesh *terrain.Mesh, originX, originZ float32) {
	tp.clear()

	gl.GenVertexArrays(1, &tp.vao)
	gl.BindVertexArray(tp.vao)
	gl.GenBuffers(int32(len(tp.buffers)), &tp.buffers[0])

	attribute := func(location uint32, buf uint32, data []float32, size int32) {
		gl.BindBuffer(gl.ARRAY_BUFFER, buf)
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)
		gl.VertexAttribPointerWithOffset(location, size, gl.FLOAT, false, 0, 0)
		gl.EnableVertexAttribArray(location)
	}
	attribute(0, tp.buffers[0], mesh.Positions, 3)
	attribute(1, tp.buffers[1], mesh.Normals, 3)
	attribute(2, tp.buffers[2], mesh.UVs, 2)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, tp.buffers[3])
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, unsafe.Pointer(&mesh.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	tp.indexCount = int32(len(mesh.Indices))
	tp.model = math.Translate(originX, 0, originZ)
	tp.minHeight = mesh.Bounds.Min[1]
	tp.maxHeight = mesh.Bounds.Max[1]
}

func (tp *terrainPass) draw(lights lightUniforms, v View, sky math.Vec3) int {
	if tp.vao == 0 {
		return 0
	}

	p := tp.program
	p.Use()
	setFrameUniforms(p, lights, v, sky)
	p.SetMat4("uModel", tp.model)
	p.SetFloat("uMinHeight", tp.minHeight)
	p.SetFloat("uMaxHeight", tp.maxHeight)
	p.SetFloat("uShineDamper", 1)
	p.SetFloat("uReflectivity", 0)

	gl.BindVertexArray(tp.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, tp.indexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
	return 1
}

func (tp *terrainPass) clear() {
	if tp.vao != 0 {
		gl.DeleteVertexArrays(1, &tp.vao)
		gl.DeleteBuffers(int32(len(tp.buffers)), &tp.buffers[0])
		tp.vao = 0
		tp.buffers = [4]uint32{}
	}
}

func (tp *terrainPass) delete() {
	tp.clear()
	tp.program.Delete()
}

// setFrameUniforms uploads camera and light state shared by both passes.
func setFrameUniforms(p *shader.Program, lights lightUniforms, v View, sky math.Vec3) {
	p.SetMat4("uView", v.View)
	p.SetMat4("uProjection", v.Projection)
	p.SetVec3("uCameraPos", v.CameraPos)
	p.SetVec3("uSkyColour", sky)
	p.SetInt("uLightCount", int32(lights.count))
	p.SetVec3Array("uLightPositions", lights.positions)
	p.SetVec3Array("uLightColours", lights.colours)
	p.SetVec3Array("uAttenuation", lights.attenuation)
}
