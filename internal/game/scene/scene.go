// Package scene loads scene descriptions: drawable resources, lights, entity
// placements and the player start.
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Errors returned while building a scene.
var (
	ErrNoResources       = errors.New("scene: no resources defined")
	ErrDuplicateResource = errors.New("scene: duplicate resource name")
	ErrUnknownResource   = errors.New("scene: unknown resource")
	ErrUnknownPrimitive  = errors.New("scene: unknown primitive")
	ErrInvalidRing       = errors.New("scene: invalid ring")
)

// Primitive shapes a resource can be drawn with.
const (
	PrimitiveCube    = "cube"
	PrimitivePyramid = "pyramid"
)

// DefaultLightHeight lifts ring lights above their lamp's base.
const DefaultLightHeight = 41.5

// Vec3 is written in YAML as a three element sequence.
type Vec3 [3]float32

// Scene is the on-disk scene description.
type Scene struct {
	Resources []ResourceDef `yaml:"resources"`
	Lights    []LightDef    `yaml:"lights"`
	Entities  []EntityDef   `yaml:"entities"`
	Rings     []RingDef     `yaml:"rings"`
	Player    PlayerDef     `yaml:"player"`
}

// ResourceDef describes a drawable and its material.
type ResourceDef struct {
	Name         string  `yaml:"name"`
	Primitive    string  `yaml:"primitive"`
	Colour       Vec3    `yaml:"colour"`
	ShineDamper  float32 `yaml:"shine_damper"`
	Reflectivity float32 `yaml:"reflectivity"`
	FakeLighting bool    `yaml:"fake_lighting"`
}

// LightDef is a point light. Attenuation defaults to (1, 0, 0).
type LightDef struct {
	Position    Vec3  `yaml:"position"`
	Colour      Vec3  `yaml:"colour"`
	Attenuation *Vec3 `yaml:"attenuation,omitempty"`
}

// EntityDef places one static entity.
type EntityDef struct {
	Name          string  `yaml:"name"`
	Resource      string  `yaml:"resource"`
	Position      Vec3    `yaml:"position"`
	Rotation      Vec3    `yaml:"rotation"`
	Scale         float32 `yaml:"scale"`
	SnapToTerrain bool    `yaml:"snap_to_terrain"`
	Spin          float32 `yaml:"spin"` // degrees per second about Y
}

// RingDef places Count entities evenly on a circle, each with a light above it.
// Light colours cycle through LightColours.
type RingDef struct {
	Name         string     `yaml:"name"`
	Resource     string     `yaml:"resource"`
	Center       [2]float32 `yaml:"center"` // x, z
	Radius       float32    `yaml:"radius"`
	Count        int        `yaml:"count"`
	Scale        float32    `yaml:"scale"`
	LightHeight  float32    `yaml:"light_height"`
	LightColours []Vec3     `yaml:"light_colours"`
	Attenuation  *Vec3      `yaml:"attenuation,omitempty"`
}

// PlayerDef is the player's drawable and start transform.
type PlayerDef struct {
	Resource string  `yaml:"resource"`
	Position Vec3    `yaml:"position"`
	Rotation Vec3    `yaml:"rotation"`
	Scale    float32 `yaml:"scale"`
}

// Load reads a scene description from a YAML file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene: %w", err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return sc, nil
}

// Parse decodes a scene description. Unknown keys are rejected.
func Parse(data []byte) (*Scene, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var sc Scene
	if err := dec.Decode(&sc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing scene: %w", err)
	}
	return &sc, nil
}

// Marshal encodes the scene as YAML.
func (sc *Scene) Marshal() ([]byte, error) {
	return yaml.Marshal(sc)
}

// Default returns the demo scene: six lamps in a hexagon around a spinning
// dragon, with the player standing south of them.
func Default() *Scene {
	attenuation := Vec3{1, 0.01, 0.002}
	return &Scene{
		Resources: []ResourceDef{
			{Name: "bunny", Primitive: PrimitiveCube, Colour: Vec3{1, 1, 1}, ShineDamper: 10, Reflectivity: 1},
			{Name: "lamp", Primitive: PrimitivePyramid, Colour: Vec3{0.9, 0.8, 0.5}, ShineDamper: 10, Reflectivity: 1, FakeLighting: true},
			{Name: "dragon", Primitive: PrimitiveCube, Colour: Vec3{0.8, 0.1, 0.1}, ShineDamper: 10, Reflectivity: 1},
		},
		Lights: []LightDef{
			{Position: Vec3{0, 10000, -7000}, Colour: Vec3{0.4, 0.4, 0.4}},
		},
		Rings: []RingDef{
			{
				Name:        "lamp",
				Resource:    "lamp",
				Center:      [2]float32{-400, -400},
				Radius:      200,
				Count:       6,
				Scale:       3,
				LightHeight: DefaultLightHeight,
				LightColours: []Vec3{
					{2, 0, 0},
					{0, 2, 2},
					{2, 2, 0},
				},
				Attenuation: &attenuation,
			},
		},
		Entities: []EntityDef{
			{
				Name:          "dragon",
				Resource:      "dragon",
				Position:      Vec3{-400, 0, -400},
				Rotation:      Vec3{0, 180, 0},
				Scale:         5,
				SnapToTerrain: true,
				Spin:          30,
			},
		},
		Player: PlayerDef{
			Resource: "bunny",
			Position: Vec3{-400, 0, -750},
			Scale:    1,
		},
	}
}
