package parrot

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// Blending selects the source factor, destination factor, and combine
// operation a pipeline blends fragments with. The same triple is applied to
// the color and alpha channels.
type Blending struct {
	Src wgpu.BlendFactor
	Dst wgpu.BlendFactor
	Op  wgpu.BlendOperation
}

// AlphaBlending is standard premultiplied-style alpha compositing.
func AlphaBlending() Blending {
	return Blending{
		Src: wgpu.BlendFactorSrcAlpha,
		Dst: wgpu.BlendFactorOneMinusSrcAlpha,
		Op:  wgpu.BlendOperationAdd,
	}
}

// ConstantBlending replaces the destination outright.
func ConstantBlending() Blending {
	return Blending{
		Src: wgpu.BlendFactorOne,
		Dst: wgpu.BlendFactorZero,
		Op:  wgpu.BlendOperationAdd,
	}
}

// WGPU expands the blending triple into a native blend state.
func (b Blending) WGPU() *wgpu.BlendState {
	component := wgpu.BlendComponent{
		SrcFactor: b.Src,
		DstFactor: b.Dst,
		Operation: b.Op,
	}
	return &wgpu.BlendState{
		Color: component,
		Alpha: component,
	}
}

// Topology is the primitive topology a pipeline assembles vertices with.
// The zero value is TriangleList.
type Topology int

const (
	TriangleList Topology = iota
	LineList
)

// WGPU converts the topology tag to its wgpu counterpart.
func (t Topology) WGPU() wgpu.PrimitiveTopology {
	if t == LineList {
		return wgpu.PrimitiveTopologyLineList
	}
	return wgpu.PrimitiveTopologyTriangleList
}

// PipelineLayout is the ordered list of binding group layouts a pipeline
// binds resources through.
type PipelineLayout struct {
	Sets []BindingGroupLayout
}

// Pipeline is an immutable, fully constructed render pipeline. Changing
// blend mode, depth behavior, or sample count requires building a new one.
type Pipeline struct {
	WGPU   *wgpu.RenderPipeline
	Layout PipelineLayout
	Vertex VertexLayout
	Name   string
}

// Release frees the native pipeline and its binding group layouts.
func (p *Pipeline) Release() {
	for _, set := range p.Layout.Sets {
		set.WGPU.Release()
	}
	p.WGPU.Release()
}

// PipelineCore is the state every plumber exposes for drawing: the built
// pipeline, its binding groups, and the uniform buffers its shaders read.
type PipelineCore struct {
	Pipeline Pipeline
	Bindings []BindingGroup
	Uniforms []*UniformBuffer
}

// PipelineDescription declares a pipeline before any native resource exists:
// the vertex attribute formats, the binding sets, and the shader source.
type PipelineDescription struct {
	VertexLayout VertexLayout
	Sets         []Set
	Shader       ShaderSource
	Topology     Topology
	Name         string
}

// UniformUpdate pairs a uniform buffer with the bytes to write into it this
// frame.
type UniformUpdate struct {
	Buffer *UniformBuffer
	Data   []byte
}

// Plumber is the contract a custom render pipeline implements. A plumber
// starts as a plain value whose Description declares its layout; the painter
// builds the native pipeline and hands it to Setup, after which Core must
// return the constructed state.
type Plumber interface {
	// Description declares the pipeline's vertex layout, binding sets, and
	// shader. It is called before Setup and must not depend on GPU state.
	Description() PipelineDescription
	// Setup receives the constructed pipeline and creates the plumber's own
	// buffers and binding groups through the painter.
	Setup(pipeline Pipeline, painter *Painter)
	// Core returns the constructed pipeline state. Only valid after Setup.
	Core() *PipelineCore
}

// Preparer is a plumber that produces per-frame uniform updates from a
// caller-defined prepare context.
type Preparer[C any] interface {
	Plumber
	// Prepare maps the frame's context to the uniform writes it requires.
	Prepare(ctx C, painter *Painter) []UniformUpdate
}

// PipelineFactory builds a pipeline from a description, replacing the
// default construction path. Used by [Painter.CustomPipeline] for pipelines
// that need native options the description cannot express.
type PipelineFactory func(d *Device, desc PipelineDescription) (Pipeline, error)

// depthState returns the depth-stencil stage for pipelines that want depth
// testing, or nil to omit the stage entirely.
func depthState(depth bool) *wgpu.DepthStencilState {
	if !depth {
		return nil
	}
	return &wgpu.DepthStencilState{
		Format:            DepthFormat,
		DepthWriteEnabled: true,
		DepthCompare:      wgpu.CompareFunctionLessEqual,
		StencilFront: wgpu.StencilFaceState{
			Compare: wgpu.CompareFunctionAlways,
		},
		StencilBack: wgpu.StencilFaceState{
			Compare: wgpu.CompareFunctionAlways,
		},
	}
}

// renderPipelineDescriptor assembles the native descriptor for a pipeline.
// Pure apart from the native handles it threads through, so the translation
// of blending, depth, and topology is testable without a device.
func renderPipelineDescriptor(
	desc PipelineDescription,
	layout *wgpu.PipelineLayout,
	module *wgpu.ShaderModule,
	blending Blending,
	format wgpu.TextureFormat,
	sampleCount uint32,
	depth bool,
) *wgpu.RenderPipelineDescriptor {
	return &wgpu.RenderPipelineDescriptor{
		Label:  desc.Name,
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{desc.VertexLayout.WGPU()},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    format,
				Blend:     blending.WGPU(),
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  desc.Topology.WGPU(),
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		DepthStencil: depthState(depth),
		Multisample: wgpu.MultisampleState{
			Count:                  sampleCount,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	}
}
