// Package movement implements keyboard-driven player movement over a
// transform, kept on top of the terrain.
package movement

import (
	gomath "math"

	"github.com/Faultbox/dreaming/internal/engine/batch"
	"github.com/Faultbox/dreaming/pkg/math"
)

// Ground provides terrain height lookups.
type Ground interface {
	HeightAt(x, z float32) float32
}

// Params tunes movement. Speeds are per second; turn speed is in degrees.
type Params struct {
	RunSpeed  float32
	TurnSpeed float32
	Gravity   float32
	JumpPower float32
}

// DefaultParams returns the standard player tuning.
func DefaultParams() Params {
	return Params{
		RunSpeed:  40,
		TurnSpeed: 160,
		Gravity:   -70,
		JumpPower: 30,
	}
}

// State carries per-player movement between frames.
type State struct {
	CurrentSpeed     float32
	CurrentTurnSpeed float32
	UpwardsSpeed     float32
	InAir            bool
}

// Controls is the input held during a frame.
type Controls struct {
	Forward   bool
	Backward  bool
	TurnLeft  bool
	TurnRight bool
	Jump      bool
}

// Step advances t by dt seconds. ground may be nil, in which case the
// player falls without a floor.
func Step(t *batch.Transform, s *State, p Params, in Controls, dt float32, ground Ground) {
	applyControls(s, p, in)

	t.Rotation.Y += s.CurrentTurnSpeed * dt

	distance := s.CurrentSpeed * dt
	yaw := float64(math.Radians(t.Rotation.Y))
	t.Position.X += distance * float32(gomath.Sin(yaw))
	t.Position.Z += distance * float32(gomath.Cos(yaw))

	s.UpwardsSpeed += p.Gravity * dt
	t.Position.Y += s.UpwardsSpeed * dt

	if ground == nil {
		return
	}
	if h := ground.HeightAt(t.Position.X, t.Position.Z); t.Position.Y < h {
		t.Position.Y = h
		s.UpwardsSpeed = 0
		s.InAir = false
	}
}

func applyControls(s *State, p Params, in Controls) {
	switch {
	case in.Forward:
		s.CurrentSpeed = p.RunSpeed
	case in.Backward:
		s.CurrentSpeed = -p.RunSpeed
	default:
		s.CurrentSpeed = 0
	}

	switch {
	case in.TurnRight:
		s.CurrentTurnSpeed = -p.TurnSpeed
	case in.TurnLeft:
		s.CurrentTurnSpeed = p.TurnSpeed
	default:
		s.CurrentTurnSpeed = 0
	}

	if in.Jump && !s.InAir {
		s.UpwardsSpeed = p.JumpPower
		s.InAir = true
	}
}
