package parrot

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"honnef.co/go/safeish"

	"github.com/Chameko/pigeon/geom"
)

// Texture is a sampleable 2D GPU texture together with its default view.
type Texture struct {
	WGPU   *wgpu.Texture
	View   *wgpu.TextureView
	Extent wgpu.Extent3D
	Format wgpu.TextureFormat
	Size   geom.Size[int]
	Name   string
}

// BindingEntry implements [Bind].
func (t *Texture) BindingEntry(index uint32) wgpu.BindGroupEntry {
	return wgpu.BindGroupEntry{
		Binding:     index,
		TextureView: t.View,
	}
}

// Release frees the texture and its view.
func (t *Texture) Release() {
	t.View.Release()
	t.WGPU.Release()
}

// Sampler describes how shaders filter texture reads.
type Sampler struct {
	WGPU *wgpu.Sampler
}

// BindingEntry implements [Bind].
func (s *Sampler) BindingEntry(index uint32) wgpu.BindGroupEntry {
	return wgpu.BindGroupEntry{
		Binding: index,
		Sampler: s.WGPU,
	}
}

// Release frees the sampler.
func (s *Sampler) Release() {
	s.WGPU.Release()
}

// FrameBuffer is an off-screen render target that can also be sampled as a
// texture by later passes.
type FrameBuffer struct {
	Texture Texture
}

// BindingEntry implements [Bind].
func (f *FrameBuffer) BindingEntry(index uint32) wgpu.BindGroupEntry {
	return f.Texture.BindingEntry(index)
}

// RenderView implements [RenderTarget].
func (f *FrameBuffer) RenderView() *wgpu.TextureView {
	return f.Texture.View
}

// TargetSize implements [RenderTarget].
func (f *FrameBuffer) TargetSize() geom.Size[int] {
	return f.Texture.Size
}

// Release frees the underlying texture.
func (f *FrameBuffer) Release() {
	f.Texture.Release()
}

// Pixel is the set of pixel types texture transfer operations accept.
type Pixel interface {
	Rgba8 | Bgra8
}

// FillTexture uploads a full image to t. The pixel slice is in row-major
// order with the origin at the bottom left; rows are flipped during upload to
// match the GPU's top-left origin. Panics if len(pixels) does not match the
// texture's area.
func FillTexture[P Pixel](d *Device, t *Texture, pixels []P) {
	if len(pixels) != t.Size.Area() {
		panic(fmt.Sprintf("parrot: fill of %q with %d pixels, texture holds %d",
			t.Name, len(pixels), t.Size.Area()))
	}
	TransferTexture(d, t, pixels, t.Size, geom.Pt(0, 0))
}

// ClearTexture overwrites every pixel of t with a single color.
func ClearTexture[P Pixel](d *Device, t *Texture, color P) {
	pixels := make([]P, t.Size.Area())
	for i := range pixels {
		pixels[i] = color
	}
	FillTexture(d, t, pixels)
}

// TransferTexture uploads a rectangular region of pixel data to t. The
// region has the given size and its bottom-left corner at origin, in
// bottom-left coordinates. Panics if the region does not fit inside the
// texture or the pixel slice does not cover it.
func TransferTexture[P Pixel](d *Device, t *Texture, pixels []P, size geom.Size[int], origin geom.Point[int]) {
	if len(pixels) != size.Area() {
		panic(fmt.Sprintf("parrot: transfer of %d pixels into a %dx%d region",
			len(pixels), size.Width, size.Height))
	}
	if origin.X < 0 || origin.Y < 0 ||
		origin.X+size.Width > t.Size.Width || origin.Y+size.Height > t.Size.Height {
		panic(fmt.Sprintf("parrot: transfer region %dx%d at (%d, %d) exceeds %dx%d texture",
			size.Width, size.Height, origin.X, origin.Y, t.Size.Width, t.Size.Height))
	}
	flipped := flipRows(pixels, size.Width, size.Height)
	d.Queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  t.WGPU,
			MipLevel: 0,
			Origin: wgpu.Origin3D{
				X: uint32(origin.X),
				// Convert the bottom-left origin to the GPU's top-left one.
				Y: uint32(t.Size.Height - origin.Y - size.Height),
			},
			Aspect: wgpu.TextureAspectAll,
		},
		safeish.SliceCast[[]byte](flipped),
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(4 * size.Width),
			RowsPerImage: uint32(size.Height),
		},
		&wgpu.Extent3D{
			Width:              uint32(size.Width),
			Height:             uint32(size.Height),
			DepthOrArrayLayers: 1,
		},
	)
}

// flipRows returns a copy of pixels with the row order reversed. A slice
// already one row tall is returned as is.
func flipRows[P Pixel](pixels []P, width, height int) []P {
	if height <= 1 {
		return pixels
	}
	flipped := make([]P, len(pixels))
	for y := 0; y < height; y++ {
		copy(flipped[y*width:(y+1)*width], pixels[(height-1-y)*width:(height-y)*width])
	}
	return flipped
}

// Blit records a whole-texture copy from src to dst into the frame's command
// stream. Panics if the two textures differ in extent.
func (f *Frame) Blit(src, dst *Texture) {
	if src.Extent != dst.Extent {
		panic(fmt.Sprintf("parrot: blit between mismatched extents %dx%d and %dx%d",
			src.Extent.Width, src.Extent.Height, dst.Extent.Width, dst.Extent.Height))
	}
	f.encoder.CopyTextureToTexture(
		&wgpu.ImageCopyTexture{
			Texture:  src.WGPU,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		&wgpu.ImageCopyTexture{
			Texture:  dst.WGPU,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		&src.Extent,
	)
}
