// Package heightgen generates Perlin-noise heightmaps packed into RGB images.
package heightgen

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/aquilax/go-perlin"
)

// maxPacked is the largest 24-bit packed RGB value.
const maxPacked = 1<<24 - 1

// ErrInvalidSize is returned for images smaller than 2x2.
var ErrInvalidSize = errors.New("heightgen: size must be at least 2")

// Params controls noise generation.
type Params struct {
	Size    int     // Width and height in pixels
	Seed    int64   // Noise seed
	Alpha   float64 // Weight falloff between octaves
	Beta    float64 // Frequency step between octaves
	Octaves int32
	Scale   float64 // Noise periods across the image
}

// DefaultParams returns settings for a 256 pixel rolling landscape.
func DefaultParams() Params {
	return Params{
		Size:    256,
		Seed:    1,
		Alpha:   2,
		Beta:    2,
		Octaves: 3,
		Scale:   4,
	}
}

// Generate renders a heightmap. Levels are normalised to the full packed
// range so ChannelPacked decoding spans [-maxHeight, maxHeight).
func Generate(p Params) (*image.RGBA, error) {
	if p.Size < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, p.Size)
	}

	noise := perlin.NewPerlin(p.Alpha, p.Beta, p.Octaves, p.Seed)
	levels := make([]float64, p.Size*p.Size)
	lo, hi := 1e9, -1e9
	for y := range p.Size {
		for x := range p.Size {
			fx := float64(x) / float64(p.Size) * p.Scale
			fy := float64(y) / float64(p.Size) * p.Scale
			v := noise.Noise2D(fx, fy)
			levels[y*p.Size+x] = v
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, p.Size, p.Size))
	span := hi - lo
	for n, v := range levels {
		z := 0.5
		if span > 0 {
			z = (v - lo) / span
		}
		img.SetRGBA(n%p.Size, n/p.Size, EncodePacked(z))
	}
	return img, nil
}

// EncodePacked stores a level in [0, 1] as an opaque 24-bit RGB colour.
// Values outside the range are clamped.
func EncodePacked(z float64) color.RGBA {
	z = min(max(z, 0), 1)
	v := int(maxPacked * z)
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xFF,
	}
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return out.Close()
}
