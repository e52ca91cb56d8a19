package scene

import (
	"fmt"

	"github.com/Faultbox/dreaming/internal/engine/batch"
	"github.com/Faultbox/dreaming/pkg/math"
)

// Material holds per-resource lighting parameters.
type Material struct {
	Colour       math.Vec3
	ShineDamper  float32
	Reflectivity float32
	FakeLighting bool
}

// Resource is a registered drawable.
type Resource struct {
	Key       batch.ResourceKey
	Name      string
	Primitive string
	Material  Material
}

// Registry hands out resource keys in registration order.
type Registry struct {
	byName    map[string]batch.ResourceKey
	resources []Resource
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]batch.ResourceKey)}
}

// Register adds a resource and returns its key.
func (r *Registry) Register(def ResourceDef) (batch.ResourceKey, error) {
	if _, ok := r.byName[def.Name]; ok {
		return 0, fmt.Errorf("%w: %q", ErrDuplicateResource, def.Name)
	}
	prim := def.Primitive
	if prim == "" {
		prim = PrimitiveCube
	}
	if prim != PrimitiveCube && prim != PrimitivePyramid {
		return 0, fmt.Errorf("%w: %q for resource %q", ErrUnknownPrimitive, def.Primitive, def.Name)
	}

	key := batch.ResourceKey(len(r.resources))
	r.byName[def.Name] = key
	r.resources = append(r.resources, Resource{
		Key:       key,
		Name:      def.Name,
		Primitive: prim,
		Material: Material{
			Colour:       vec(def.Colour),
			ShineDamper:  def.ShineDamper,
			Reflectivity: def.Reflectivity,
			FakeLighting: def.FakeLighting,
		},
	})
	return key, nil
}

// Lookup returns the key registered under name.
func (r *Registry) Lookup(name string) (batch.ResourceKey, bool) {
	key, ok := r.byName[name]
	return key, ok
}

// Resources returns every registered resource in key order.
func (r *Registry) Resources() []Resource {
	return r.resources
}

// Len returns the number of registered resources.
func (r *Registry) Len() int {
	return len(r.resources)
}

func vec(v Vec3) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}
