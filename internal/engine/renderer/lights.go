package renderer

import "github.com/Faultbox/dreaming/pkg/math"

// Light is a point light with quadratic attenuation.
type Light struct {
	Position    math.Vec3
	Colour      math.Vec3
	Attenuation math.Vec3
}

// lightUniforms holds packed light arrays ready for upload.
type lightUniforms struct {
	positions   []float32
	colours     []float32
	attenuation []float32
	count       int
}

// packLights flattens up to MaxLights lights. Extra lights are dropped.
func packLights(lights []Light) lightUniforms {
	n := min(len(lights), MaxLights)
	u := lightUniforms{
		positions:   make([]float32, 0, n*3),
		colours:     make([]float32, 0, n*3),
		attenuation: make([]float32, 0, n*3),
		count:       n,
	}
	for _, l := range lights[:n] {
		att := l.Attenuation
		if att == (math.Vec3{}) {
			att = math.Vec3{X: 1}
		}
		u.positions = append(u.positions, l.Position.X, l.Position.Y, l.Position.Z)
		u.colours = append(u.colours, l.Colour.X, l.Colour.Y, l.Colour.Z)
		u.attenuation = append(u.attenuation, att.X, att.Y, att.Z)
	}
	return u
}
