package scene

import (
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/dreaming/internal/engine/batch"
	"github.com/Faultbox/dreaming/internal/logger"
	"github.com/Faultbox/dreaming/pkg/math"
)

// Ground provides terrain height lookups for snapping.
type Ground interface {
	HeightAt(x, z float32) float32
}

// Light is a resolved point light.
type Light struct {
	Position    math.Vec3
	Colour      math.Vec3
	Attenuation math.Vec3
}

// Entity is a placed drawable. Spin is in degrees per second about Y.
type Entity struct {
	Name      string
	Resource  batch.ResourceKey
	Transform batch.Transform
	Spin      float32
}

// Layout is a scene with resource names resolved to keys and heights snapped
// to the terrain.
type Layout struct {
	Registry *Registry
	Lights   []Light
	Entities []Entity
	Player   Entity
}

// Build resolves a scene description against the terrain. ground may be nil,
// in which case snapping places entities at height 0.
func Build(sc *Scene, ground Ground) (*Layout, error) {
	if len(sc.Resources) == 0 {
		return nil, ErrNoResources
	}

	reg := NewRegistry()
	for _, def := range sc.Resources {
		if _, err := reg.Register(def); err != nil {
			return nil, err
		}
	}

	heightAt := func(x, z float32) float32 {
		if ground == nil {
			return 0
		}
		return ground.HeightAt(x, z)
	}

	layout := &Layout{Registry: reg}
	for _, def := range sc.Lights {
		layout.Lights = append(layout.Lights, Light{
			Position:    vec(def.Position),
			Colour:      vec(def.Colour),
			Attenuation: attenuationOf(def.Attenuation),
		})
	}

	for _, ring := range sc.Rings {
		if err := expandRing(layout, ring, heightAt); err != nil {
			return nil, err
		}
	}

	for _, def := range sc.Entities {
		key, ok := reg.Lookup(def.Resource)
		if !ok {
			return nil, fmt.Errorf("%w: %q referenced by entity %q", ErrUnknownResource, def.Resource, def.Name)
		}
		pos := vec(def.Position)
		if def.SnapToTerrain {
			pos.Y = heightAt(pos.X, pos.Z)
		}
		layout.Entities = append(layout.Entities, Entity{
			Name:     def.Name,
			Resource: key,
			Transform: batch.Transform{
				Position: pos,
				Rotation: vec(def.Rotation),
				Scale:    math.Splat(scaleOr1(def.Scale)),
			},
			Spin: def.Spin,
		})
	}

	playerKey, ok := reg.Lookup(sc.Player.Resource)
	if !ok {
		return nil, fmt.Errorf("%w: %q referenced by player", ErrUnknownResource, sc.Player.Resource)
	}
	layout.Player = Entity{
		Name:     "player",
		Resource: playerKey,
		Transform: batch.Transform{
			Position: vec(sc.Player.Position),
			Rotation: vec(sc.Player.Rotation),
			Scale:    math.Splat(scaleOr1(sc.Player.Scale)),
		},
	}

	logger.Debug("scene built",
		zap.Int("resources", reg.Len()),
		zap.Int("lights", len(layout.Lights)),
		zap.Int("entities", len(layout.Entities)))

	return layout, nil
}

// expandRing places ring.Count entities on a circle starting at angle 0, each
// with a light LightHeight above its base.
func expandRing(layout *Layout, ring RingDef, heightAt func(x, z float32) float32) error {
	if ring.Count <= 0 {
		return fmt.Errorf("%w: %q has count %d", ErrInvalidRing, ring.Name, ring.Count)
	}
	key, ok := layout.Registry.Lookup(ring.Resource)
	if !ok {
		return fmt.Errorf("%w: %q referenced by ring %q", ErrUnknownResource, ring.Resource, ring.Name)
	}

	lightHeight := ring.LightHeight
	if lightHeight == 0 {
		lightHeight = DefaultLightHeight
	}
	step := 360.0 / float64(ring.Count)

	for i := range ring.Count {
		theta := float64(math.Radians(float32(step * float64(i))))
		x := float32(gomath.Cos(theta))*ring.Radius + ring.Center[0]
		z := float32(gomath.Sin(theta))*ring.Radius + ring.Center[1]
		y := heightAt(x, z)

		layout.Entities = append(layout.Entities, Entity{
			Name:     fmt.Sprintf("%s-%d", ring.Name, i),
			Resource: key,
			Transform: batch.Transform{
				Position: math.Vec3{X: x, Y: y, Z: z},
				Scale:    math.Splat(scaleOr1(ring.Scale)),
			},
		})

		if len(ring.LightColours) > 0 {
			layout.Lights = append(layout.Lights, Light{
				Position:    math.Vec3{X: x, Y: y + lightHeight, Z: z},
				Colour:      vec(ring.LightColours[i%len(ring.LightColours)]),
				Attenuation: attenuationOf(ring.Attenuation),
			})
		}
	}
	return nil
}

// Spin advances every spinning entity by dt seconds.
func (l *Layout) Spin(dt float32) {
	for i := range l.Entities {
		if e := &l.Entities[i]; e.Spin != 0 {
			e.Transform.Rotation.Y += e.Spin * dt
		}
	}
}

// Submit adds the player and every entity to the batcher.
func (l *Layout) Submit(b *batch.Batcher) {
	b.Add(l.Player.Resource, &l.Player.Transform)
	for i := range l.Entities {
		b.Add(l.Entities[i].Resource, &l.Entities[i].Transform)
	}
}

func attenuationOf(a *Vec3) math.Vec3 {
	if a == nil {
		return math.Vec3{X: 1}
	}
	return vec(*a)
}

func scaleOr1(s float32) float32 {
	if s == 0 {
		return 1
	}
	return s
}
