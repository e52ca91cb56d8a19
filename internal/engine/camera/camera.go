// Package camera provides the third-person camera that follows the player.
package camera

import (
	gomath "math"

	"github.com/Faultbox/dreaming/pkg/math"
)

// Limits and sensitivities for FollowCamera.
const (
	MinDistance = 10
	MaxDistance = 200
	MinPitch    = 1
	MaxPitch    = 100

	ZoomSensitivity  = 12 // World units per wheel notch
	PitchSensitivity = 0.1
	AngleSensitivity = 0.3

	// EyeHeight lifts the camera above the target's feet.
	EyeHeight = 6
)

// FollowCamera orbits a target at a fixed distance and pitch.
// Angles are in degrees.
type FollowCamera struct {
	Position    math.Vec3
	Distance    float32
	Pitch       float32
	Yaw         float32
	AngleAround float32 // Orbit offset from the target's heading

	FOV  float32
	Near float32
	Far  float32
}

// NewFollowCamera creates a camera with default framing.
func NewFollowCamera() *FollowCamera {
	return &FollowCamera{
		Distance: 70,
		Pitch:    15,
		FOV:      70,
		Near:     0.1,
		Far:      1000,
	}
}

// Zoom moves the camera towards or away from the target by wheel notches.
func (c *FollowCamera) Zoom(wheel float32) {
	c.Distance = clamp(c.Distance-wheel*ZoomSensitivity, MinDistance, MaxDistance)
}

// Drag tilts and orbits the camera by a mouse delta in pixels.
func (c *FollowCamera) Drag(dx, dy float32) {
	c.Pitch = clamp(c.Pitch-dy*PitchSensitivity, MinPitch, MaxPitch)
	c.AngleAround -= dx * AngleSensitivity
}

// Follow places the camera behind a target facing targetYaw degrees.
func (c *FollowCamera) Follow(target math.Vec3, targetYaw float32) {
	pitch := float64(math.Radians(c.Pitch))
	horizontal := c.Distance * float32(gomath.Cos(pitch))
	vertical := c.Distance * float32(gomath.Sin(pitch))

	theta := targetYaw + c.AngleAround
	rad := float64(math.Radians(theta))
	c.Position = math.Vec3{
		X: target.X - horizontal*float32(gomath.Sin(rad)),
		Y: target.Y + vertical + EyeHeight,
		Z: target.Z - horizontal*float32(gomath.Cos(rad)),
	}
	c.Yaw = 180 - theta
}

// ViewMatrix returns the view matrix for the current position and angles.
func (c *FollowCamera) ViewMatrix() math.Mat4 {
	return math.ViewFromEuler(c.Position, c.Pitch, c.Yaw)
}

// Projection returns the perspective matrix for a viewport aspect ratio.
func (c *FollowCamera) Projection(aspect float32) math.Mat4 {
	return math.Perspective(math.Radians(c.FOV), aspect, c.Near, c.Far)
}

func clamp(v, lo, hi float32) float32 {
	return min(max(v, lo), hi)
}
