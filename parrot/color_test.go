package parrot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRgba8ToFloatExact(t *testing.T) {
	// Every 8-bit channel value must convert to exactly v/255.
	for v := 0; v <= 255; v++ {
		c := NewRgba8(uint8(v), uint8(v), uint8(v), uint8(v)).Rgba()
		want := float32(v) / 255.0
		assert.Equal(t, want, c.R)
		assert.Equal(t, want, c.G)
		assert.Equal(t, want, c.B)
		assert.Equal(t, want, c.A)
	}
}

func TestBgra8ChannelSwap(t *testing.T) {
	c := NewBgra8(10, 20, 30, 40).Rgba8()
	assert.Equal(t, NewRgba8(30, 20, 10, 40), c)
}

func TestAlignRgba8(t *testing.T) {
	pixels := AlignRgba8([]byte{1, 2, 3, 4, 5, 6, 7, 8})
	assert.Equal(t, []Rgba8{NewRgba8(1, 2, 3, 4), NewRgba8(5, 6, 7, 8)}, pixels)

	assert.Panics(t, func() { AlignRgba8([]byte{1, 2, 3}) })
	assert.Panics(t, func() { AlignBgra8([]byte{1, 2, 3, 4, 5}) })
}

func TestRgbaWGPU(t *testing.T) {
	c := NewRgba(0.25, 0.5, 0.75, 1).WGPU()
	assert.Equal(t, 0.25, c.R)
	assert.Equal(t, 0.5, c.G)
	assert.Equal(t, 0.75, c.B)
	assert.Equal(t, 1.0, c.A)
}
