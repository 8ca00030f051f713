package parrot

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestVertexLayoutStride(t *testing.T) {
	tests := []struct {
		formats []VertexFormat
		stride  int
	}{
		{nil, 0},
		{[]VertexFormat{Floatx2}, 8},
		{[]VertexFormat{Floatx3, Floatx2}, 20},
		{[]VertexFormat{Floatx3, Floatx4}, 28},
		{[]VertexFormat{Floatx1, Uint32x1, Floatx4}, 24},
	}
	for _, tt := range tests {
		vl := NewVertexLayout(tt.formats...)
		assert.Equal(t, tt.stride, vl.Stride())
	}
}

func TestVertexLayoutOffsetsAndLocations(t *testing.T) {
	formats := []VertexFormat{Floatx3, Floatx2, Uint32x1, Floatx4}
	vl := NewVertexLayout(formats...)
	attrs := vl.Attributes()
	assert.Len(t, attrs, 4)

	// Offsets are contiguous from 0 and shader locations are dense in
	// declaration order.
	offset := uint64(0)
	for i, attr := range attrs {
		assert.Equal(t, uint32(i), attr.ShaderLocation)
		assert.Equal(t, offset, attr.Offset)
		offset += uint64(formats[i].ByteSize())
	}
	assert.Equal(t, uint64(0), attrs[0].Offset)
	assert.Equal(t, uint64(12), attrs[1].Offset)
	assert.Equal(t, uint64(20), attrs[2].Offset)
	assert.Equal(t, uint64(24), attrs[3].Offset)

	assert.Equal(t, wgpu.VertexFormatFloat32x3, attrs[0].Format)
	assert.Equal(t, wgpu.VertexFormatFloat32x2, attrs[1].Format)
	assert.Equal(t, wgpu.VertexFormatUint32, attrs[2].Format)
	assert.Equal(t, wgpu.VertexFormatFloat32x4, attrs[3].Format)
}

func TestVertexLayoutWGPU(t *testing.T) {
	vl := NewVertexLayout(Floatx3, Floatx2)
	native := vl.WGPU()
	assert.Equal(t, uint64(20), native.ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeVertex, native.StepMode)
	assert.Len(t, native.Attributes, 2)
}
