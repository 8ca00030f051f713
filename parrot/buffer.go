package parrot

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// VertexBuffer is a growable GPU buffer holding vertex data. Cap is the
// allocated size in bytes; the buffer may hold fewer bytes of live data.
type VertexBuffer struct {
	WGPU *wgpu.Buffer
	Cap  int
	Name string
}

// Release frees the underlying GPU buffer.
func (b *VertexBuffer) Release() {
	b.WGPU.Release()
}

// IndexBuffer is a growable GPU buffer holding 16-bit indices. Elements is
// the logical index count; the stored data is zero-padded so the byte length
// is a multiple of 4.
type IndexBuffer struct {
	WGPU     *wgpu.Buffer
	Cap      int
	Elements int
	Name     string
}

// Release frees the underlying GPU buffer.
func (b *IndexBuffer) Release() {
	b.WGPU.Release()
}

// IndexBuffer32 is a growable GPU buffer holding 32-bit indices. Use it when
// a mesh addresses more than 65535 vertices.
type IndexBuffer32 struct {
	WGPU     *wgpu.Buffer
	Cap      int
	Elements int
	Name     string
}

// Release frees the underlying GPU buffer.
func (b *IndexBuffer32) Release() {
	b.WGPU.Release()
}

// UniformBuffer is a fixed-layout GPU buffer bound as a shader uniform. It
// holds Count elements of ElemSize bytes each.
type UniformBuffer struct {
	WGPU     *wgpu.Buffer
	ElemSize int
	Count    int
	Name     string
}

// BindingEntry implements [Bind].
func (b *UniformBuffer) BindingEntry(index uint32) wgpu.BindGroupEntry {
	return wgpu.BindGroupEntry{
		Binding: index,
		Buffer:  b.WGPU,
		Offset:  0,
		Size:    wgpu.WholeSize,
	}
}

// Release frees the underlying GPU buffer.
func (b *UniformBuffer) Release() {
	b.WGPU.Release()
}

// padIndices16 zero-pads a 16-bit index slice so its length is a multiple of
// 4 elements. WebGPU requires buffer writes to be 4-byte aligned, and two
// u16 indices occupy 4 bytes. The returned slice aliases the input when no
// padding is needed.
func padIndices16(indices []uint16) []uint16 {
	if len(indices)%4 == 0 {
		return indices
	}
	padded := make([]uint16, (len(indices)/4+1)*4)
	copy(padded, indices)
	return padded
}

// DepthBuffer is a depth attachment sized to match a render target.
type DepthBuffer struct {
	WGPU   *wgpu.Texture
	View   *wgpu.TextureView
	Format wgpu.TextureFormat
}

// Release frees the depth texture and its view.
func (d *DepthBuffer) Release() {
	d.View.Release()
	d.WGPU.Release()
}
