package parrot

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Chameko/pigeon/geom"
)

// RenderTarget is anything a render pass can draw into: the surface's
// current frame or an off-screen [FrameBuffer].
type RenderTarget interface {
	// RenderView returns the view the pass attaches color output to.
	RenderView() *wgpu.TextureView
	// TargetSize returns the target's pixel size.
	TargetSize() geom.Size[int]
}

// PassOp selects how a render pass treats the target's existing contents:
// clear to a color, or load and draw over them.
type PassOp struct {
	load  bool
	color Rgba
}

// Clear starts the pass by filling the target with a color.
func Clear(color Rgba) PassOp {
	return PassOp{color: color}
}

// Load starts the pass with the target's existing contents.
func Load() PassOp {
	return PassOp{load: true}
}

func (op PassOp) loadOp() wgpu.LoadOp {
	if op.load {
		return wgpu.LoadOpLoad
	}
	return wgpu.LoadOpClear
}

// RenderFrame is one acquired surface frame: the swapchain texture, its
// view, and the multisample and depth attachments the painter maintains for
// it. Consumed exactly once by [Painter.Present].
type RenderFrame struct {
	Texture *wgpu.Texture
	View    *wgpu.TextureView
	// MSAA is the multisampled color target when the painter's sample count
	// is above 1, nil otherwise.
	MSAA  *wgpu.TextureView
	Depth *DepthBuffer
	Size  geom.Size[int]
}

// RenderView implements [RenderTarget].
func (rf *RenderFrame) RenderView() *wgpu.TextureView {
	return rf.View
}

// TargetSize implements [RenderTarget].
func (rf *RenderFrame) TargetSize() geom.Size[int] {
	return rf.Size
}

// Frame is a single command-recording scope. Obtain one per rendered frame
// from [Painter.Frame], record passes into it, and submit it through
// [Painter.Present].
type Frame struct {
	encoder *wgpu.CommandEncoder
}

// Pass begins a render pass into the surface frame. When the frame carries a
// multisample attachment, drawing goes there and resolves into the surface
// view; when it carries a depth attachment, depth testing follows op (clear
// passes reset depth to the far plane).
func (f *Frame) Pass(op PassOp, rf *RenderFrame) Pass {
	color := wgpu.RenderPassColorAttachment{
		View:       rf.View,
		LoadOp:     op.loadOp(),
		StoreOp:    wgpu.StoreOpStore,
		ClearValue: op.color.WGPU(),
	}
	if rf.MSAA != nil {
		color.View = rf.MSAA
		color.ResolveTarget = rf.View
	}
	desc := wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{color},
	}
	if rf.Depth != nil {
		desc.DepthStencilAttachment = &wgpu.RenderPassDepthStencilAttachment{
			View:            rf.Depth.View,
			DepthLoadOp:     op.loadOp(),
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		}
	}
	return Pass{WGPU: f.encoder.BeginRenderPass(&desc)}
}

// PassTo begins a render pass into an off-screen target. No multisample or
// depth attachment is wired; off-screen passes draw directly.
func (f *Frame) PassTo(op PassOp, target RenderTarget) Pass {
	return Pass{WGPU: f.encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       target.RenderView(),
			LoadOp:     op.loadOp(),
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: op.color.WGPU(),
		}},
	})}
}

// PassToDepth begins an off-screen render pass with a depth attachment. The
// depth buffer must match the target's size and have been created with a
// sample count of 1.
func (f *Frame) PassToDepth(op PassOp, target RenderTarget, depth *DepthBuffer) Pass {
	return Pass{WGPU: f.encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       target.RenderView(),
			LoadOp:     op.loadOp(),
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: op.color.WGPU(),
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            depth.View,
			DepthLoadOp:     op.loadOp(),
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})}
}

// Pass is an open render pass extended with parrot-typed bind and draw
// calls. Call End before beginning another pass on the same frame.
type Pass struct {
	WGPU *wgpu.RenderPassEncoder
}

// SetPlumber binds a constructed plumber's pipeline and all of its binding
// groups at their set indices.
func (p Pass) SetPlumber(plumber Plumber) {
	core := plumber.Core()
	p.WGPU.SetPipeline(core.Pipeline.WGPU)
	for _, bg := range core.Bindings {
		p.WGPU.SetBindGroup(bg.SetIndex, bg.WGPU, nil)
	}
}

// SetBinding attaches one binding group at its set index.
func (p Pass) SetBinding(bg BindingGroup) {
	p.WGPU.SetBindGroup(bg.SetIndex, bg.WGPU, nil)
}

// SetVertexBuffer attaches a vertex buffer to the given slot.
func (p Pass) SetVertexBuffer(slot uint32, b *VertexBuffer) {
	p.WGPU.SetVertexBuffer(slot, b.WGPU, 0, wgpu.WholeSize)
}

// SetIndexBuffer attaches a 16-bit index buffer.
func (p Pass) SetIndexBuffer(b *IndexBuffer) {
	p.WGPU.SetIndexBuffer(b.WGPU, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
}

// SetIndexBuffer32 attaches a 32-bit index buffer.
func (p Pass) SetIndexBuffer32(b *IndexBuffer32) {
	p.WGPU.SetIndexBuffer(b.WGPU, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
}

// Draw issues a non-indexed draw of count vertices starting at first.
func (p Pass) Draw(first, count uint32) {
	p.WGPU.Draw(count, 1, first, 0)
}

// DrawIndexed issues an indexed draw of count indices starting at first.
func (p Pass) DrawIndexed(first, count uint32) {
	p.WGPU.DrawIndexed(count, 1, first, 0, 0)
}

// End closes the pass and releases its encoder.
func (p Pass) End() {
	p.WGPU.End()
	p.WGPU.Release()
}
