package parrot

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlendingWGPU(t *testing.T) {
	state := AlphaBlending().WGPU()
	assert.Equal(t, wgpu.BlendFactorSrcAlpha, state.Color.SrcFactor)
	assert.Equal(t, wgpu.BlendFactorOneMinusSrcAlpha, state.Color.DstFactor)
	assert.Equal(t, wgpu.BlendOperationAdd, state.Color.Operation)
	// The same triple applies to both channels.
	assert.Equal(t, state.Color, state.Alpha)

	state = ConstantBlending().WGPU()
	assert.Equal(t, wgpu.BlendFactorOne, state.Color.SrcFactor)
	assert.Equal(t, wgpu.BlendFactorZero, state.Color.DstFactor)
}

func TestDepthState(t *testing.T) {
	assert.Nil(t, depthState(false))

	ds := depthState(true)
	require.NotNil(t, ds)
	assert.Equal(t, DepthFormat, ds.Format)
	assert.True(t, ds.DepthWriteEnabled)
	assert.Equal(t, wgpu.CompareFunctionLessEqual, ds.DepthCompare)
	assert.Equal(t, wgpu.CompareFunctionAlways, ds.StencilFront.Compare)
	assert.Equal(t, wgpu.CompareFunctionAlways, ds.StencilBack.Compare)
}

func TestRenderPipelineDescriptor(t *testing.T) {
	desc := PipelineDescription{
		VertexLayout: NewVertexLayout(Floatx3, Floatx2),
		Shader:       WGSL("shader source"),
		Name:         "test pipeline",
	}

	native := renderPipelineDescriptor(desc, nil, nil, AlphaBlending(),
		wgpu.TextureFormatBGRA8UnormSrgb, 4, true)

	assert.Equal(t, "test pipeline", native.Label)
	assert.Equal(t, "vs_main", native.Vertex.EntryPoint)
	assert.Equal(t, "fs_main", native.Fragment.EntryPoint)
	require.Len(t, native.Vertex.Buffers, 1)
	assert.Equal(t, uint64(20), native.Vertex.Buffers[0].ArrayStride)

	require.Len(t, native.Fragment.Targets, 1)
	assert.Equal(t, wgpu.TextureFormatBGRA8UnormSrgb, native.Fragment.Targets[0].Format)
	assert.Equal(t, wgpu.ColorWriteMaskAll, native.Fragment.Targets[0].WriteMask)

	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, native.Primitive.Topology)
	assert.Equal(t, wgpu.FrontFaceCCW, native.Primitive.FrontFace)
	assert.Equal(t, uint32(4), native.Multisample.Count)
	assert.NotNil(t, native.DepthStencil)
}

func TestRenderPipelineDescriptorNoDepth(t *testing.T) {
	desc := PipelineDescription{
		VertexLayout: NewVertexLayout(Floatx2),
		Shader:       WGSL("shader source"),
		Topology:     LineList,
	}
	native := renderPipelineDescriptor(desc, nil, nil, ConstantBlending(),
		wgpu.TextureFormatRGBA8UnormSrgb, 1, false)

	// The depth stage is absent entirely, not merely disabled.
	assert.Nil(t, native.DepthStencil)
	assert.Equal(t, wgpu.PrimitiveTopologyLineList, native.Primitive.Topology)
	assert.Equal(t, uint32(1), native.Multisample.Count)
}

func TestShaderSource(t *testing.T) {
	assert.True(t, WGSL("code").IsWGSL())
	assert.False(t, SPIRV([]byte{1, 2, 3}).IsWGSL())
}
