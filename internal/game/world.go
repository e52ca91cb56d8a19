package game

import (
	"github.com/Faultbox/dreaming/internal/engine/batch"
	"github.com/Faultbox/dreaming/internal/engine/camera"
	"github.com/Faultbox/dreaming/internal/engine/terrain"
	"github.com/Faultbox/dreaming/internal/game/movement"
	"github.com/Faultbox/dreaming/internal/game/scene"
)

// Controls is the player and camera input for one frame.
type Controls struct {
	Move  movement.Controls
	Zoom  float32 // Wheel notches
	DragX float32
	DragY float32
}

// World is the simulated state stepped once per frame. It owns no GL
// resources.
type World struct {
	Terrain *terrain.HeightField
	Layout  *scene.Layout
	Camera  *camera.FollowCamera

	params  movement.Params
	state   movement.State
	batcher *batch.Batcher
}

// NewWorld assembles a world and places the camera behind the player.
func NewWorld(hf *terrain.HeightField, layout *scene.Layout, cam *camera.FollowCamera, params movement.Params) *World {
	w := &World{
		Terrain: hf,
		Layout:  layout,
		Camera:  cam,
		params:  params,
		batcher: batch.New(),
	}
	p := w.Player()
	w.Camera.Follow(p.Position, p.Rotation.Y)
	return w
}

// Player returns the player's transform.
func (w *World) Player() *batch.Transform {
	return &w.Layout.Player.Transform
}

// Update advances the world by dt seconds.
func (w *World) Update(dt float32, c Controls) {
	p := w.Player()
	movement.Step(p, &w.state, w.params, c.Move, dt, w.Terrain)
	w.Layout.Spin(dt)

	if c.Zoom != 0 {
		w.Camera.Zoom(c.Zoom)
	}
	if c.DragX != 0 || c.DragY != 0 {
		w.Camera.Drag(c.DragX, c.DragY)
	}
	w.Camera.Follow(p.Position, p.Rotation.Y)
}

// Submit rebuilds the frame's batches from the current entity state.
func (w *World) Submit() *batch.Batcher {
	w.batcher.Clear()
	w.Layout.Submit(w.batcher)
	return w.batcher
}
