// Package renderer draws the terrain patch and batched scene entities with
// OpenGL.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/dreaming/internal/engine/batch"
	"github.com/Faultbox/dreaming/internal/engine/terrain"
	"github.com/Faultbox/dreaming/internal/logger"
	"github.com/Faultbox/dreaming/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width     int
	Height    int
	SkyColour math.Vec3
}

// Resource describes how to draw one resource key.
type Resource struct {
	Key          batch.ResourceKey
	Name         string
	Primitive    string
	Colour       math.Vec3
	ShineDamper  float32
	Reflectivity float32
	FakeLighting bool
}

// View is the camera state for one frame.
type View struct {
	View       math.Mat4
	Projection math.Mat4
	CameraPos  math.Vec3
}

// Renderer handles all OpenGL rendering.
// Must be created after the OpenGL context.
type Renderer struct {
	config   Config
	terrain  *terrainPass
	entities *entityPass

	drawCalls int
}

// New initialises OpenGL and compiles the shader passes.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.Enable(gl.MULTISAMPLE)
	gl.ClearColor(cfg.SkyColour.X, cfg.SkyColour.Y, cfg.SkyColour.Z, 1)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	if r.terrain, err = newTerrainPass(); err != nil {
		return nil, fmt.Errorf("terrain pass: %w", err)
	}
	if r.entities, err = newEntityPass(); err != nil {
		r.terrain.delete()
		return nil, fmt.Errorf("entity pass: %w", err)
	}

	return r, nil
}

// Close releases GPU resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	r.terrain.delete()
	r.entities.delete()
}

// Resize updates the viewport.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// LoadTerrain uploads a terrain mesh placed at a world origin.
func (r *Renderer) LoadTerrain(mesh *terrain.Mesh, originX, originZ float32) {
	r.terrain.upload(mesh, originX, originZ)
	logger.Info("terrain uploaded",
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Float32("originX", originX),
		zap.Float32("originZ", originZ),
	)
}

// LoadResources builds GPU meshes for every resource.
func (r *Renderer) LoadResources(resources []Resource) error {
	for _, res := range resources {
		if err := r.entities.register(res); err != nil {
			return fmt.Errorf("resource %q: %w", res.Name, err)
		}
	}
	logger.Debug("resources uploaded", zap.Int("count", len(resources)))
	return nil
}

// Begin clears the frame.
func (r *Renderer) Begin() {
	r.drawCalls = 0
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawScene draws the batched entities then the terrain.
func (r *Renderer) DrawScene(b *batch.Batcher, lights []Light, v View) {
	packed := packLights(lights)
	r.drawCalls += r.entities.draw(b, packed, v, r.config.SkyColour)
	r.drawCalls += r.terrain.draw(packed, v, r.config.SkyColour)
}

// ReadPixels reads the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	pixels = make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}

// DrawCalls returns the draw calls issued since Begin.
func (r *Renderer) DrawCalls() int {
	return r.drawCalls
}
