package images

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngFixture(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 16 {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func TestNormalizeDownscalesLargeImages(t *testing.T) {
	data, name, err := Normalize(pngFixture(t, 2048, 1024))
	require.NoError(t, err)
	assert.Equal(t, "profile.webp", name)

	decoded, err := webp.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, maxEdge, decoded.Bounds().Dx())
	assert.Equal(t, maxEdge/2, decoded.Bounds().Dy())
}

func TestNormalizeKeepsSmallImages(t *testing.T) {
	data, _, err := Normalize(pngFixture(t, 100, 80))
	require.NoError(t, err)

	decoded, err := webp.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 100, decoded.Bounds().Dx())
	assert.Equal(t, 80, decoded.Bounds().Dy())
}

func TestNormalizeRejectsNonImages(t *testing.T) {
	_, _, err := Normalize(strings.NewReader("definitely not pixels"))
	assert.Error(t, err)
}
