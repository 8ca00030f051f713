package parrot

import (
	"structs"

	"github.com/cogentcore/webgpu/wgpu"
	"honnef.co/go/safeish"
)

// Rgba8 is an RGBA color with 8-bit channels, laid out byte-for-byte the way
// RGBA8 texture formats expect.
type Rgba8 struct {
	_ structs.HostLayout

	R uint8
	G uint8
	B uint8
	A uint8
}

func NewRgba8(r, g, b, a uint8) Rgba8 {
	return Rgba8{R: r, G: g, B: b, A: a}
}

// AlignRgba8 reinterprets a byte slice as a slice of Rgba8 values. It panics
// if the length is not a multiple of four.
func AlignRgba8(bs []byte) []Rgba8 {
	if len(bs)%4 != 0 {
		panic("parrot: byte slice is not a valid Rgba8 buffer")
	}
	return safeish.SliceCast[[]Rgba8](bs)
}

// Bgra8 is a BGRA color with 8-bit channels, matching BGRA8 texture formats
// (the usual surface format on desktop platforms).
type Bgra8 struct {
	_ structs.HostLayout

	B uint8
	G uint8
	R uint8
	A uint8
}

func NewBgra8(b, g, r, a uint8) Bgra8 {
	return Bgra8{B: b, G: g, R: r, A: a}
}

// AlignBgra8 reinterprets a byte slice as a slice of Bgra8 values. It panics
// if the length is not a multiple of four.
func AlignBgra8(bs []byte) []Bgra8 {
	if len(bs)%4 != 0 {
		panic("parrot: byte slice is not a valid Bgra8 buffer")
	}
	return safeish.SliceCast[[]Bgra8](bs)
}

// Rgba8 converts to the RGBA channel order.
func (c Bgra8) Rgba8() Rgba8 {
	return Rgba8{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Rgba is an RGBA color with float channels in [0, 1].
type Rgba struct {
	_ structs.HostLayout

	R float32
	G float32
	B float32
	A float32
}

var (
	Transparent = NewRgba(0, 0, 0, 0)
	Red         = NewRgba(1, 0, 0, 1)
	Green       = NewRgba(0, 1, 0, 1)
	Blue        = NewRgba(0, 0, 1, 1)
	White       = NewRgba(1, 1, 1, 1)
	Black       = NewRgba(0, 0, 0, 1)
)

func NewRgba(r, g, b, a float32) Rgba {
	return Rgba{R: r, G: g, B: b, A: a}
}

// Rgba converts the 8-bit color to floats, dividing each channel by 255.
func (c Rgba8) Rgba() Rgba {
	return Rgba{
		R: float32(c.R) / 255.0,
		G: float32(c.G) / 255.0,
		B: float32(c.B) / 255.0,
		A: float32(c.A) / 255.0,
	}
}

// WGPU converts the color for use as a render pass clear value.
func (c Rgba) WGPU() wgpu.Color {
	return wgpu.Color{
		R: float64(c.R),
		G: float64(c.G),
		B: float64(c.B),
		A: float64(c.A),
	}
}
