package heightgen

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/dreaming/internal/engine/terrain"
)

func smallParams() Params {
	p := DefaultParams()
	p.Size = 32
	return p
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(smallParams())
	require.NoError(t, err)
	b, err := Generate(smallParams())
	require.NoError(t, err)
	assert.Equal(t, a.Pix, b.Pix)

	p := smallParams()
	p.Seed = 42
	c, err := Generate(p)
	require.NoError(t, err)
	assert.NotEqual(t, a.Pix, c.Pix)
}

func TestGenerateShape(t *testing.T) {
	img, err := Generate(smallParams())
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())

	for i := 3; i < len(img.Pix); i += 4 {
		require.Equal(t, uint8(0xFF), img.Pix[i], "pixel %d is not opaque", i/4)
	}
}

func TestGenerateInvalidSize(t *testing.T) {
	p := smallParams()
	p.Size = 1
	_, err := Generate(p)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestEncodePacked(t *testing.T) {
	assert.Equal(t, [4]uint8{0, 0, 0, 255}, rgba(EncodePacked(0)))
	assert.Equal(t, [4]uint8{255, 255, 255, 255}, rgba(EncodePacked(1)))
	assert.Equal(t, [4]uint8{255, 255, 255, 255}, rgba(EncodePacked(3)))
	assert.Equal(t, [4]uint8{0, 0, 0, 255}, rgba(EncodePacked(-1)))
	assert.Equal(t, [4]uint8{0x7F, 0xFF, 0xFF, 255}, rgba(EncodePacked(0.5)))
}

func TestGeneratedImageDecodesToFullRange(t *testing.T) {
	img, err := Generate(smallParams())
	require.NoError(t, err)

	opts := terrain.DefaultOptions()
	hf, err := terrain.FromImage(img, opts)
	require.NoError(t, err)

	lo, hi := hf.MinMax()
	assert.InDelta(t, -opts.MaxHeight, lo, 1e-3)
	assert.InDelta(t, opts.MaxHeight, hi, 1e-3)
	assert.Less(t, hi, opts.MaxHeight)
}

func TestWritePNG(t *testing.T) {
	img, err := Generate(smallParams())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "height.png")
	require.NoError(t, WritePNG(path, img))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())

	hf, err := terrain.LoadHeightmap(path, terrain.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 32, hf.Size())
}

func TestWritePNGBadPath(t *testing.T) {
	img, err := Generate(smallParams())
	require.NoError(t, err)
	assert.Error(t, WritePNG(filepath.Join(t.TempDir(), "missing", "x.png"), img))
}

func rgba(c interface{ RGBA() (r, g, b, a uint32) }) [4]uint8 {
	r, g, b, a := c.RGBA()
	return [4]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}
