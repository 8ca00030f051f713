package parrot

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// VertexFormat is the set of attribute formats a vertex layout can be built
// from.
type VertexFormat int

const (
	Floatx1 VertexFormat = iota
	Floatx2
	Floatx3
	Floatx4
	Uint32x1
)

// ByteSize returns the width of one attribute of this format.
func (f VertexFormat) ByteSize() int {
	switch f {
	case Floatx1, Uint32x1:
		return 4
	case Floatx2:
		return 8
	case Floatx3:
		return 12
	case Floatx4:
		return 16
	default:
		panic(fmt.Sprintf("parrot: unhandled vertex format %d", f))
	}
}

// WGPU converts the format tag to its wgpu counterpart.
func (f VertexFormat) WGPU() wgpu.VertexFormat {
	switch f {
	case Floatx1:
		return wgpu.VertexFormatFloat32
	case Floatx2:
		return wgpu.VertexFormatFloat32x2
	case Floatx3:
		return wgpu.VertexFormatFloat32x3
	case Floatx4:
		return wgpu.VertexFormatFloat32x4
	case Uint32x1:
		return wgpu.VertexFormatUint32
	default:
		panic(fmt.Sprintf("parrot: unhandled vertex format %d", f))
	}
}

// VertexLayout describes the attributes of one vertex buffer. Attributes are
// packed contiguously: offsets start at 0 and increase by each format's byte
// size, and shader locations are assigned in declaration order.
type VertexLayout struct {
	attrs  []wgpu.VertexAttribute
	stride int
}

// NewVertexLayout builds a layout from an ordered list of format tags.
func NewVertexLayout(formats ...VertexFormat) VertexLayout {
	var vl VertexLayout
	for _, f := range formats {
		vl.attrs = append(vl.attrs, wgpu.VertexAttribute{
			ShaderLocation: uint32(len(vl.attrs)),
			Offset:         uint64(vl.stride),
			Format:         f.WGPU(),
		})
		vl.stride += f.ByteSize()
	}
	return vl
}

// Stride returns the byte stride of one vertex.
func (vl VertexLayout) Stride() int {
	return vl.stride
}

// Attributes returns the computed attribute list.
func (vl VertexLayout) Attributes() []wgpu.VertexAttribute {
	return vl.attrs
}

// WGPU converts the layout for use in a render pipeline descriptor.
func (vl VertexLayout) WGPU() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(vl.stride),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  vl.attrs,
	}
}
