package pigeon

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chameko/pigeon/parrot"
)

func TestIDAllocator(t *testing.T) {
	var ids IDAllocator
	seen := map[uint64]bool{}
	for range 100 {
		id := ids.Next()
		assert.NotZero(t, id)
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestImagePixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255}) // top left: red
	img.SetRGBA(1, 0, color.RGBA{G: 255, A: 255}) // top right: green
	img.SetRGBA(0, 1, color.RGBA{B: 255, A: 255}) // bottom left: blue
	img.SetRGBA(1, 1, color.RGBA{A: 255})         // bottom right: black

	pixels := imagePixels(img)
	require.Len(t, pixels, 4)

	// Rows come out bottom-up for the texture fill's bottom-left origin.
	assert.Equal(t, parrot.NewRgba8(0, 0, 255, 255), pixels[0])
	assert.Equal(t, parrot.NewRgba8(0, 0, 0, 255), pixels[1])
	assert.Equal(t, parrot.NewRgba8(255, 0, 0, 255), pixels[2])
	assert.Equal(t, parrot.NewRgba8(0, 255, 0, 255), pixels[3])
}

func TestImagePixelsOffsetBounds(t *testing.T) {
	// Sub-images with a non-zero origin convert the same as zero-based ones.
	img := image.NewRGBA(image.Rect(10, 10, 12, 11))
	img.SetRGBA(10, 10, color.RGBA{R: 1, G: 2, B: 3, A: 4})
	img.SetRGBA(11, 10, color.RGBA{R: 5, G: 6, B: 7, A: 8})

	pixels := imagePixels(img)
	require.Len(t, pixels, 2)
	assert.Equal(t, parrot.NewRgba8(1, 2, 3, 4), pixels[0])
	assert.Equal(t, parrot.NewRgba8(5, 6, 7, 8), pixels[1])
}
