// Package batch groups per-frame entity instances by the resource they draw.
package batch

import (
	"github.com/Faultbox/dreaming/pkg/math"
)

// ResourceKey is a small stable handle for a drawable resource.
type ResourceKey int

// Transform places one instance in the world.
type Transform struct {
	Position math.Vec3
	Rotation math.Vec3 // degrees about x, y, z
	Scale    math.Vec3
}

// NewTransform returns a transform at pos with uniform scale.
func NewTransform(pos math.Vec3, scale float32) Transform {
	return Transform{Position: pos, Scale: math.Splat(scale)}
}

// Matrix returns the model matrix for the transform.
func (t *Transform) Matrix() math.Mat4 {
	return math.Transformation(t.Position, t.Rotation, t.Scale)
}

// Stats summarises the current batches.
type Stats struct {
	Batches   int
	Instances int
}

// Batcher collects instances between Clear calls. It is rebuilt every frame
// and is not safe for concurrent use.
type Batcher struct {
	batches   map[ResourceKey][]*Transform
	instances int
}

// New creates an empty batcher.
func New() *Batcher {
	return &Batcher{
		batches: make(map[ResourceKey][]*Transform),
	}
}

// Add appends an instance to the batch for key. Adding the same transform
// twice yields two instances.
func (b *Batcher) Add(key ResourceKey, t *Transform) {
	b.batches[key] = append(b.batches[key], t)
	b.instances++
}

// ForEach calls fn once per distinct key added since the last Clear.
// Iteration order is unspecified.
func (b *Batcher) ForEach(fn func(key ResourceKey, instances []*Transform)) {
	for key, instances := range b.batches {
		fn(key, instances)
	}
}

// Clear empties every batch.
func (b *Batcher) Clear() {
	clear(b.batches)
	b.instances = 0
}

// Len returns the number of distinct keys.
func (b *Batcher) Len() int {
	return len(b.batches)
}

// Stats returns batch and instance counts.
func (b *Batcher) Stats() Stats {
	return Stats{Batches: len(b.batches), Instances: b.instances}
}
