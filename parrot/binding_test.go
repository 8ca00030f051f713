package parrot

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestLayoutEntries(t *testing.T) {
	set := Set{
		Name: "test set",
		Bindings: []Binding{
			{Kind: UniformBufferBinding, Stage: wgpu.ShaderStageVertex},
			{Kind: SamplerBinding, Stage: wgpu.ShaderStageFragment},
			{Kind: TextureBinding, Stage: wgpu.ShaderStageFragment},
		},
	}

	for i, b := range set.Bindings {
		entry := b.layoutEntry(uint32(i))
		assert.Equal(t, uint32(i), entry.Binding)
		assert.Equal(t, b.Stage, entry.Visibility)
	}

	uniform := set.Bindings[0].layoutEntry(0)
	assert.Equal(t, wgpu.BufferBindingTypeUniform, uniform.Buffer.Type)

	sampler := set.Bindings[1].layoutEntry(1)
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, sampler.Sampler.Type)

	texture := set.Bindings[2].layoutEntry(2)
	assert.Equal(t, wgpu.TextureSampleTypeFloat, texture.Texture.SampleType)
	assert.Equal(t, wgpu.TextureViewDimension2D, texture.Texture.ViewDimension)
	assert.False(t, texture.Texture.Multisampled)
}

func TestBindingGroupCountMismatchPanics(t *testing.T) {
	d := &Device{}
	layout := BindingGroupLayout{Size: 2, SetIndex: 0}
	buffer := &UniformBuffer{}

	// The count check fires before any native call.
	assert.Panics(t, func() {
		d.CreateBindingGroup("mismatch", layout, buffer)
	})
	assert.Panics(t, func() {
		d.CreateBindingGroup("mismatch", layout, buffer, buffer, buffer)
	})
}

func TestBindingEntries(t *testing.T) {
	uniform := &UniformBuffer{}
	entry := uniform.BindingEntry(3)
	assert.Equal(t, uint32(3), entry.Binding)
	assert.Equal(t, uint64(wgpu.WholeSize), entry.Size)

	tex := &Texture{}
	entry = tex.BindingEntry(1)
	assert.Equal(t, uint32(1), entry.Binding)

	sampler := &Sampler{}
	entry = sampler.BindingEntry(2)
	assert.Equal(t, uint32(2), entry.Binding)
}
