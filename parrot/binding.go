package parrot

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// BindingType is the kind of resource a binding slot holds.
type BindingType int

const (
	UniformBufferBinding BindingType = iota
	SamplerBinding
	TextureBinding
)

// Binding describes one shader-visible resource slot: its kind and the
// shader stages that can see it. Slot indices are assigned sequentially in
// declaration order.
type Binding struct {
	Kind  BindingType
	Stage wgpu.ShaderStage
}

// layoutEntry builds the native layout entry for a slot at the given binding
// index.
func (b Binding) layoutEntry(index uint32) wgpu.BindGroupLayoutEntry {
	entry := wgpu.BindGroupLayoutEntry{
		Binding:    index,
		Visibility: b.Stage,
	}
	switch b.Kind {
	case UniformBufferBinding:
		entry.Buffer = wgpu.BufferBindingLayout{
			Type: wgpu.BufferBindingTypeUniform,
		}
	case SamplerBinding:
		entry.Sampler = wgpu.SamplerBindingLayout{
			Type: wgpu.SamplerBindingTypeFiltering,
		}
	case TextureBinding:
		entry.Texture = wgpu.TextureBindingLayout{
			SampleType:    wgpu.TextureSampleTypeFloat,
			ViewDimension: wgpu.TextureViewDimension2D,
			Multisampled:  false,
		}
	default:
		panic(fmt.Sprintf("parrot: unhandled binding type %d", b.Kind))
	}
	return entry
}

// Set is an ordered group of bindings that will share one binding group.
type Set struct {
	Bindings []Binding
	Name     string
}

// BindingGroupLayout is the layout of a BindingGroup: the native layout
// object, the number of slots, and the set index the group binds at.
type BindingGroupLayout struct {
	WGPU     *wgpu.BindGroupLayout
	Size     int
	SetIndex uint32
}

// BindingGroup is a concrete set of bound resources, attached at SetIndex
// during a draw call.
type BindingGroup struct {
	WGPU     *wgpu.BindGroup
	SetIndex uint32
}

// Bind is implemented by resources that can be placed in a binding group:
// uniform buffers, samplers, textures, and frame buffers.
type Bind interface {
	// BindingEntry returns the bind group entry for this resource at the
	// given binding index.
	BindingEntry(index uint32) wgpu.BindGroupEntry
}
