package terrain

import (
	"fmt"
	"math"
)

// HeightField is an immutable square grid of elevations placed in the world.
// Samples are stored row-major by grid X: heights[x*size+z].
type HeightField struct {
	size      int
	heights   []float32
	originX   float32
	originZ   float32
	worldSize float32
	cellSize  float32
	minH      float32
	maxH      float32
}

// NewHeightField builds a height field from already-decoded samples in grid
// order. The samples are copied.
func NewHeightField(size int, samples []float32, opts Options) (*HeightField, error) {
	if size < 2 {
		return nil, fmt.Errorf("%w: size %d", ErrGridTooSmall, size)
	}
	if len(samples) != size*size {
		return nil, fmt.Errorf("%w: got %d samples for %dx%d", ErrSampleCount, len(samples), size, size)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	heights := make([]float32, len(samples))
	copy(heights, samples)
	return newHeightField(size, heights, opts), nil
}

// newHeightField takes ownership of heights.
func newHeightField(size int, heights []float32, opts Options) *HeightField {
	hf := &HeightField{
		size:      size,
		heights:   heights,
		originX:   opts.OriginX,
		originZ:   opts.OriginZ,
		worldSize: opts.WorldSize,
		cellSize:  opts.WorldSize / float32(size-1),
		minH:      float32(math.Inf(1)),
		maxH:      float32(math.Inf(-1)),
	}
	for _, h := range heights {
		hf.minH = min(hf.minH, h)
		hf.maxH = max(hf.maxH, h)
	}
	return hf
}

// Size returns the number of samples per side.
func (hf *HeightField) Size() int { return hf.size }

// WorldSize returns the side length in world units.
func (hf *HeightField) WorldSize() float32 { return hf.worldSize }

// CellSize returns the spacing between neighbouring samples.
func (hf *HeightField) CellSize() float32 { return hf.cellSize }

// Origin returns the world position of sample (0, 0).
func (hf *HeightField) Origin() (x, z float32) { return hf.originX, hf.originZ }

// MinMax returns the lowest and highest sample.
func (hf *HeightField) MinMax() (lo, hi float32) { return hf.minH, hf.maxH }

// at returns the sample at grid (x, z). Callers guarantee bounds.
func (hf *HeightField) at(x, z int) float32 {
	return hf.heights[x*hf.size+z]
}
