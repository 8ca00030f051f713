package parrot

import (
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"honnef.co/go/safeish"

	"github.com/Chameko/pigeon/geom"
)

// Painter owns a device and its surface and drives the per-frame lifecycle:
// acquire a frame, record passes, present. All resource creation and the
// buffer update protocol are reachable through it. Single-threaded; a
// painter must only be used from the thread that configures it.
type Painter struct {
	Device *Device

	sampleCount uint32
	presentMode wgpu.PresentMode
	msaa        *Texture
	depth       *DepthBuffer
}

// NewPainter builds a painter over a surface. The painter starts
// unconfigured; call Configure before acquiring frames.
func NewPainter(instance *wgpu.Instance, surface *wgpu.Surface) (*Painter, error) {
	device, err := ForSurface(instance, surface)
	if err != nil {
		return nil, err
	}
	return &Painter{
		Device:      device,
		sampleCount: 1,
		presentMode: wgpu.PresentModeFifo,
	}, nil
}

// PreferredFormat returns the surface's preferred texture format. Pipelines
// drawing to the surface must target it.
func (p *Painter) PreferredFormat() wgpu.TextureFormat {
	return p.Device.PreferredFormat()
}

// SampleCount returns the painter's multisample count.
func (p *Painter) SampleCount() uint32 {
	return p.sampleCount
}

// Size returns the configured surface size.
func (p *Painter) Size() geom.Size[int] {
	return p.Device.Size()
}

// UpdateSampleCount changes the multisample count and rebuilds the frame
// attachments. Pipelines bake their sample count at construction, so every
// pipeline drawing to the surface must be rebuilt afterwards.
func (p *Painter) UpdateSampleCount(count uint32) error {
	if count == p.sampleCount {
		return nil
	}
	logger().Warn("sample count changed, existing pipelines must be rebuilt",
		"old", p.sampleCount, "new", count)
	p.sampleCount = count
	if p.Device.Size().IsEmpty() {
		return nil
	}
	return p.Configure(p.Device.Size(), p.presentMode)
}

// Configure (re)configures the surface and rebuilds the depth and
// multisample attachments to match. Called at startup and on every resize.
func (p *Painter) Configure(size geom.Size[int], presentMode wgpu.PresentMode) error {
	p.Device.Configure(size, presentMode)
	p.presentMode = presentMode

	if p.depth != nil {
		p.depth.Release()
	}
	depth, err := p.Device.CreateDepthBuffer(size, p.sampleCount)
	if err != nil {
		return err
	}
	p.depth = depth

	if p.msaa != nil {
		p.msaa.Release()
		p.msaa = nil
	}
	if p.sampleCount > 1 {
		msaa, err := p.Device.createTexture("msaa target", size,
			p.PreferredFormat(), wgpu.TextureUsageRenderAttachment, p.sampleCount)
		if err != nil {
			return err
		}
		p.msaa = msaa
	}
	return nil
}

// Frame opens a command-recording scope for one rendered frame.
func (p *Painter) Frame() (*Frame, error) {
	encoder, err := p.Device.WGPU.CreateCommandEncoder(nil)
	if err != nil {
		return nil, err
	}
	return &Frame{encoder: encoder}, nil
}

// CurrentFrame acquires the surface's next frame with the depth attachment
// wired. Passes begun on it depth-test at less-or-equal.
func (p *Painter) CurrentFrame() (*RenderFrame, error) {
	rf, err := p.currentFrame()
	if err != nil {
		return nil, err
	}
	rf.Depth = p.depth
	return rf, nil
}

// CurrentFrameNoDepth acquires the surface's next frame without a depth
// attachment.
func (p *Painter) CurrentFrameNoDepth() (*RenderFrame, error) {
	return p.currentFrame()
}

func (p *Painter) currentFrame() (*RenderFrame, error) {
	tex, err := p.Device.Surface.GetCurrentTexture()
	if err != nil {
		return nil, err
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		return nil, err
	}
	rf := &RenderFrame{
		Texture: tex,
		View:    view,
		Size:    p.Device.Size(),
	}
	if p.msaa != nil {
		rf.MSAA = p.msaa.View
	}
	logger().Debug("frame acquired", "width", rf.Size.Width, "height", rf.Size.Height)
	return rf, nil
}

// Present submits the frame's recorded commands and presents the surface.
// The render frame is consumed; acquire a new one next frame.
func (p *Painter) Present(f *Frame, rf *RenderFrame) error {
	cmd, err := f.encoder.Finish(nil)
	if err != nil {
		return err
	}
	p.Device.Queue.Submit(cmd)
	p.Device.Surface.Present()
	logger().Debug("frame presented")
	cmd.Release()
	f.encoder.Release()
	rf.View.Release()
	rf.Texture.Release()
	return nil
}

// Release frees the painter's frame attachments and device.
func (p *Painter) Release() {
	if p.msaa != nil {
		p.msaa.Release()
	}
	if p.depth != nil {
		p.depth.Release()
	}
	p.Device.Release()
}

// NewPipeline builds the pipeline a plumber describes, targeting the
// surface's format at the painter's sample count, and runs the plumber's
// Setup hook.
func (p *Painter) NewPipeline(plumber Plumber, blending Blending, depth bool) error {
	desc := plumber.Description()
	pipeline, err := p.Device.CreatePipeline(desc, blending, p.PreferredFormat(), p.sampleCount, depth)
	if err != nil {
		return err
	}
	plumber.Setup(pipeline, p)
	return nil
}

// CustomPipeline builds a plumber's pipeline through a caller-supplied
// factory instead of the default construction path, then runs Setup.
func (p *Painter) CustomPipeline(plumber Plumber, factory PipelineFactory) error {
	pipeline, err := factory(p.Device, plumber.Description())
	if err != nil {
		return err
	}
	plumber.Setup(pipeline, p)
	return nil
}

// UpdatePipeline runs a plumber's Prepare hook for this frame and applies
// every uniform update it returns through the grow-on-overflow protocol.
// Replaced buffers are swapped into the plumber's stored references in
// place.
func UpdatePipeline[C any](p *Painter, plumber Preparer[C], ctx C) error {
	for _, update := range plumber.Prepare(ctx, p) {
		if err := p.Device.UpdateUniformBuffer(update.Buffer, update.Data); err != nil {
			return err
		}
	}
	return nil
}

// NewVertexBuffer allocates a vertex buffer holding the given vertices.
func NewVertexBuffer[V any](p *Painter, name string, vertices []V) (*VertexBuffer, error) {
	return p.Device.CreateVertexBufferWith(name, safeish.SliceCast[[]byte](vertices))
}

// UpdateVertexBuffer writes vertices through the grow-on-overflow protocol.
func UpdateVertexBuffer[V any](p *Painter, b *VertexBuffer, vertices []V) error {
	return p.Device.UpdateVertexBuffer(b, safeish.SliceCast[[]byte](vertices))
}

// NewUniformBuffer allocates a uniform buffer holding the given values.
func NewUniformBuffer[U any](p *Painter, name string, values []U) (*UniformBuffer, error) {
	var zero U
	return p.Device.CreateUniformBuffer(name,
		safeish.SliceCast[[]byte](values), int(unsafe.Sizeof(zero)), len(values))
}

// UpdateUniformBuffer writes values through the grow-on-overflow protocol.
func UpdateUniformBuffer[U any](p *Painter, b *UniformBuffer, values []U) error {
	return p.Device.UpdateUniformBuffer(b, safeish.SliceCast[[]byte](values))
}

// NewIndexBuffer allocates a 16-bit index buffer holding the given indices.
func (p *Painter) NewIndexBuffer(name string, indices []uint16) (*IndexBuffer, error) {
	return p.Device.CreateIndexBuffer(name, indices)
}

// UpdateIndexBuffer writes 16-bit indices through the grow-on-overflow
// protocol.
func (p *Painter) UpdateIndexBuffer(b *IndexBuffer, indices []uint16) error {
	return p.Device.UpdateIndexBuffer(b, indices)
}

// NewTexture allocates a sampleable texture.
func (p *Painter) NewTexture(name string, size geom.Size[int]) (*Texture, error) {
	return p.Device.CreateTexture(name, size)
}

// NewSampler builds a sampler with the given filter modes.
func (p *Painter) NewSampler(minFilter, magFilter wgpu.FilterMode) (*Sampler, error) {
	return p.Device.CreateSampler(minFilter, magFilter)
}

// NewFrameBuffer allocates an off-screen render target in the surface's
// preferred format.
func (p *Painter) NewFrameBuffer(name string, size geom.Size[int]) (*FrameBuffer, error) {
	return p.Device.CreateFrameBuffer(name, size, p.PreferredFormat())
}

// NewBindingGroup binds resources against one of a pipeline's set layouts.
func (p *Painter) NewBindingGroup(name string, layout BindingGroupLayout, binds ...Bind) (BindingGroup, error) {
	return p.Device.CreateBindingGroup(name, layout, binds...)
}
