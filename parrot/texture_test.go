package parrot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Chameko/pigeon/geom"
)

func TestFlipRows(t *testing.T) {
	pixels := []Rgba8{
		NewRgba8(1, 0, 0, 0), NewRgba8(2, 0, 0, 0),
		NewRgba8(3, 0, 0, 0), NewRgba8(4, 0, 0, 0),
		NewRgba8(5, 0, 0, 0), NewRgba8(6, 0, 0, 0),
	}
	flipped := flipRows(pixels, 2, 3)
	assert.Equal(t, []Rgba8{
		NewRgba8(5, 0, 0, 0), NewRgba8(6, 0, 0, 0),
		NewRgba8(3, 0, 0, 0), NewRgba8(4, 0, 0, 0),
		NewRgba8(1, 0, 0, 0), NewRgba8(2, 0, 0, 0),
	}, flipped)
}

func TestFlipRowsSingleRow(t *testing.T) {
	pixels := []Rgba8{NewRgba8(1, 0, 0, 0), NewRgba8(2, 0, 0, 0)}
	flipped := flipRows(pixels, 2, 1)
	// One row needs no copy.
	assert.Equal(t, &pixels[0], &flipped[0])
}

func TestFillTextureShortBufferPanics(t *testing.T) {
	d := &Device{}
	tex := &Texture{Size: geom.Sz(4, 4), Name: "short"}
	pixels := make([]Rgba8, 15)
	assert.Panics(t, func() { FillTexture(d, tex, pixels) })
}

func TestTransferTextureBoundsPanics(t *testing.T) {
	d := &Device{}
	tex := &Texture{Size: geom.Sz(8, 8)}

	// Pixel count must cover the region.
	assert.Panics(t, func() {
		TransferTexture(d, tex, make([]Rgba8, 3), geom.Sz(2, 2), geom.Pt(0, 0))
	})
	// Region must fit inside the texture.
	assert.Panics(t, func() {
		TransferTexture(d, tex, make([]Rgba8, 4), geom.Sz(2, 2), geom.Pt(7, 0))
	})
	assert.Panics(t, func() {
		TransferTexture(d, tex, make([]Rgba8, 4), geom.Sz(2, 2), geom.Pt(0, -1))
	})
}
