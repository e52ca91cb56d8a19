// Package terrain provides the height field, height queries and mesh
// building for a single square terrain patch.
package terrain

import (
	"errors"
	"fmt"
)

var (
	// ErrGridTooSmall is returned when a grid has fewer than 2 samples per side.
	ErrGridTooSmall = errors.New("terrain: grid must be at least 2x2")
	// ErrNotSquare is returned when a raster's width and height differ.
	ErrNotSquare = errors.New("terrain: heightmap is not square")
	// ErrSampleCount is returned when the sample slice does not hold size*size values.
	ErrSampleCount = errors.New("terrain: sample count does not match grid size")
	// ErrInvalidOptions is returned for non-positive world size or max height.
	ErrInvalidOptions = errors.New("terrain: invalid options")
)

// Default terrain dimensions.
const (
	DefaultWorldSize = 800
	DefaultMaxHeight = 45
)

// Channel selects how raster pixels are decoded into heights.
type Channel int

const (
	// ChannelPacked reads the pixel as a signed 32-bit ARGB integer with a
	// 24-bit range, so opaque black is -MaxHeight.
	ChannelPacked Channel = iota
	// ChannelGray reads 16-bit luminance shifted down by 65536 before
	// decoding, so black is -MaxHeight and white just under MaxHeight, the
	// same span as an opaque packed raster.
	ChannelGray
	// ChannelRed reads the 8-bit red channel shifted down by 256, spanning
	// [-MaxHeight, MaxHeight) like ChannelGray.
	ChannelRed
)

func (c Channel) String() string {
	switch c {
	case ChannelPacked:
		return "packed"
	case ChannelGray:
		return "gray"
	case ChannelRed:
		return "red"
	default:
		return "unknown"
	}
}

// ParseChannel maps a config name to a Channel.
func ParseChannel(name string) (Channel, error) {
	switch name {
	case "", "packed":
		return ChannelPacked, nil
	case "gray":
		return ChannelGray, nil
	case "red":
		return ChannelRed, nil
	}
	return 0, fmt.Errorf("%w: unknown channel %q", ErrInvalidOptions, name)
}

// Options configures height field construction.
type Options struct {
	OriginX   float32 // World X of grid sample (0, 0)
	OriginZ   float32 // World Z of grid sample (0, 0)
	WorldSize float32 // Side length in world units
	MaxHeight float32 // Height of a full-range sample
	Channel   Channel
}

// DefaultOptions returns options for an 800 unit patch at the world origin.
func DefaultOptions() Options {
	return Options{
		WorldSize: DefaultWorldSize,
		MaxHeight: DefaultMaxHeight,
		Channel:   ChannelPacked,
	}
}

// Validate reports whether the options can describe a terrain patch.
func (o Options) Validate() error {
	if o.WorldSize <= 0 {
		return fmt.Errorf("%w: world size %v", ErrInvalidOptions, o.WorldSize)
	}
	if o.MaxHeight <= 0 {
		return fmt.Errorf("%w: max height %v", ErrInvalidOptions, o.MaxHeight)
	}
	switch o.Channel {
	case ChannelPacked, ChannelGray, ChannelRed:
	default:
		return fmt.Errorf("%w: channel %d", ErrInvalidOptions, o.Channel)
	}
	return nil
}

// TileOrigin returns the world origin of the terrain tile at (gridX, gridZ).
func TileOrigin(gridX, gridZ int, worldSize float32) (x, z float32) {
	return float32(gridX) * worldSize, float32(gridZ) * worldSize
}

// Mesh holds terrain geometry ready for GPU upload, one attribute per slice.
type Mesh struct {
	Positions []float32 // 3 per vertex
	Normals   []float32 // 3 per vertex
	UVs       []float32 // 2 per vertex
	Indices   []uint32
	Bounds    Bounds
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Bounds holds the axis-aligned bounding box of the mesh in local space.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Center returns the midpoint of the box.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}
