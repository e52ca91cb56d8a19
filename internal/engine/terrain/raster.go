package terrain

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder

	"go.uber.org/zap"

	"github.com/Faultbox/dreaming/internal/logger"
)

// Colour ranges for each decode mode.
const (
	packedRange = 1 << 24
	grayRange   = 1 << 16
	redRange    = 1 << 8
)

// LoadHeightmap reads and decodes a heightmap image from disk.
func LoadHeightmap(path string, opts Options) (*HeightField, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening heightmap: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding heightmap %s: %w", path, err)
	}

	hf, err := FromImage(img, opts)
	if err != nil {
		return nil, fmt.Errorf("heightmap %s: %w", path, err)
	}

	lo, hi := hf.MinMax()
	logger.Debug("heightmap loaded",
		zap.String("path", path),
		zap.String("format", format),
		zap.Int("size", hf.Size()),
		zap.Stringer("channel", opts.Channel),
		zap.Float32("min", lo),
		zap.Float32("max", hi))

	return hf, nil
}

// FromImage decodes a square raster into a height field. Pixel (x, y) becomes
// grid sample (x, z=y).
func FromImage(img image.Image, opts Options) (*HeightField, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	b := img.Bounds()
	n := b.Dx()
	if n != b.Dy() {
		return nil, fmt.Errorf("%w: %dx%d", ErrNotSquare, b.Dx(), b.Dy())
	}
	if n < 2 {
		return nil, fmt.Errorf("%w: size %d", ErrGridTooSmall, n)
	}

	heights := make([]float32, n*n)
	for x := range n {
		for z := range n {
			heights[x*n+z] = decodePixel(img.At(b.Min.X+x, b.Min.Y+z), opts)
		}
	}
	return newHeightField(n, heights, opts), nil
}

// decodePixel maps a pixel to a height in [-maxHeight, maxHeight).
func decodePixel(c color.Color, opts Options) float32 {
	var raw, colourRange int64
	switch opts.Channel {
	case ChannelGray:
		y := color.Gray16Model.Convert(c).(color.Gray16).Y
		raw = int64(y) - grayRange
		colourRange = grayRange
	case ChannelRed:
		r, _, _, _ := c.RGBA()
		raw = int64(r>>8) - redRange
		colourRange = redRange
	default:
		p := color.NRGBAModel.Convert(c).(color.NRGBA)
		// Non-premultiplied ARGB read as a signed 32-bit integer.
		packed := uint32(p.A)<<24 | uint32(p.R)<<16 | uint32(p.G)<<8 | uint32(p.B)
		raw = int64(int32(packed))
		colourRange = packedRange
	}
	return decodeHeight(raw, colourRange, opts.MaxHeight)
}

func decodeHeight(raw, colourRange int64, maxHeight float32) float32 {
	half := float64(colourRange) / 2
	return float32((float64(raw) + half) / half * float64(maxHeight))
}
