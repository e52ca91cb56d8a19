package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/dreaming/internal/engine/batch"
	"github.com/Faultbox/dreaming/internal/engine/shader"
	"github.com/Faultbox/dreaming/pkg/math"
)

// gpuMesh is an uploaded primitive.
type gpuMesh struct {
	vao, vbo, nbo, ebo uint32
	indexCount         int32
}

// entityPass draws batched entity instances, one mesh bind per resource.
type entityPass struct {
	program   *shader.Program
	meshes    map[batch.ResourceKey]*gpuMesh
	resources map[batch.ResourceKey]Resource
}

func newEntityPass() (*entityPass, error) {
	program, err := shader.NewProgram(entityVertexShader, entityFragmentShader)
	if err != nil {
		return nil, err
	}
	return &entityPass{
		program:   program,
		meshes:    make(map[batch.ResourceKey]*gpuMesh),
		resources: make(map[batch.ResourceKey]Resource),
	}, nil
}

func (ep *entityPass) register(res Resource) error {
	geom, err := Primitive(res.Primitive)
	if err != nil {
		return err
	}

	m := &gpuMesh{indexCount: int32(len(geom.Indices))}
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(geom.Positions)*4, unsafe.Pointer(&geom.Positions[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(0)

	gl.GenBuffers(1, &m.nbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.nbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(geom.Normals)*4, unsafe.Pointer(&geom.Normals[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(1)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(geom.Indices)*4, unsafe.Pointer(&geom.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	if old, ok := ep.meshes[res.Key]; ok {
		old.delete()
	}
	ep.meshes[res.Key] = m
	ep.resources[res.Key] = res
	return nil
}

// draw issues one draw call per instance and returns the count.
func (ep *entityPass) draw(b *batch.Batcher, lights lightUniforms, v View, sky math.Vec3) int {
	p := ep.program
	p.Use()
	setFrameUniforms(p, lights, v, sky)

	calls := 0
	b.ForEach(func(key batch.ResourceKey, instances []*batch.Transform) {
		m, ok := ep.meshes[key]
		if !ok {
			return
		}
		res := ep.resources[key]

		// Fake-lit resources are flat cards; draw both sides.
		if res.FakeLighting {
			gl.Disable(gl.CULL_FACE)
		}
		p.SetVec3("uColour", res.Colour)
		p.SetFloat("uShineDamper", res.ShineDamper)
		p.SetFloat("uReflectivity", res.Reflectivity)
		p.SetBool("uFakeLighting", res.FakeLighting)

		gl.BindVertexArray(m.vao)
		for _, t := range instances {
			p.SetMat4("uModel", t.Matrix())
			gl.DrawElementsWithOffset(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, 0)
			calls++
		}
		gl.BindVertexArray(0)

		if res.FakeLighting {
			gl.Enable(gl.CULL_FACE)
		}
	})
	return calls
}

func (m *gpuMesh) delete() {
	gl.DeleteVertexArrays(1, &m.vao)
	buffers := []uint32{m.vbo, m.nbo, m.ebo}
	gl.DeleteBuffers(int32(len(buffers)), &buffers[0])
}

func (ep *entityPass) delete() {
	for _, m := range ep.meshes {
		m.delete()
	}
	clear(ep.meshes)
	ep.program.Delete()
}
