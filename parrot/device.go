package parrot

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"honnef.co/go/safeish"

	"github.com/Chameko/pigeon/geom"
)

// DepthFormat is the texture format of every depth buffer parrot creates.
const DepthFormat = wgpu.TextureFormatDepth32Float

// Device wraps the native device, its queue, and the surface it renders to.
// It is the construction and update entry point for every GPU resource.
type Device struct {
	WGPU    *wgpu.Device
	Queue   *wgpu.Queue
	Surface *wgpu.Surface

	adapter *wgpu.Adapter
	size    geom.Size[int]
}

// ForSurface requests an adapter compatible with the surface and a device
// from it. Returns [ErrNoAdapter] when the system has no usable adapter.
func ForSurface(instance *wgpu.Instance, surface *wgpu.Surface) (*Device, error) {
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
	})
	if err != nil || adapter == nil {
		return nil, ErrNoAdapter
	}
	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "parrot device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("parrot: requesting device: %w", err)
	}
	return &Device{
		WGPU:    device,
		Queue:   device.GetQueue(),
		Surface: surface,
		adapter: adapter,
	}, nil
}

// PreferredFormat returns the surface's preferred texture format.
func (d *Device) PreferredFormat() wgpu.TextureFormat {
	caps := d.Surface.GetCapabilities(d.adapter)
	return caps.Formats[0]
}

// Size returns the surface size set by the last Configure call.
func (d *Device) Size() geom.Size[int] {
	return d.size
}

// Configure (re)configures the surface for the given size and present mode.
// Called at startup and on every resize.
func (d *Device) Configure(size geom.Size[int], presentMode wgpu.PresentMode) {
	caps := d.Surface.GetCapabilities(d.adapter)
	d.Surface.Configure(d.adapter, d.WGPU, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(size.Width),
		Height:      uint32(size.Height),
		PresentMode: presentMode,
		AlphaMode:   caps.AlphaModes[0],
	})
	d.size = size
	logger().Info("surface configured",
		"width", size.Width, "height", size.Height, "format", caps.Formats[0])
}

// Release frees the device and its adapter.
func (d *Device) Release() {
	d.WGPU.Release()
	d.adapter.Release()
}

// needsGrowth is the buffer growth decision: grow only when the incoming
// data exceeds capacity. Capacity is monotonic; there is no shrink path.
func needsGrowth(required, capacity int) bool {
	return required > capacity
}

// CreateVertexBuffer allocates an empty vertex buffer of the given byte
// capacity.
func (d *Device) CreateVertexBuffer(name string, capacity int) (*VertexBuffer, error) {
	buf, err := d.WGPU.CreateBuffer(&wgpu.BufferDescriptor{
		Label: name,
		Size:  uint64(capacity),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	return &VertexBuffer{WGPU: buf, Cap: capacity, Name: name}, nil
}

// CreateVertexBufferWith allocates a vertex buffer holding exactly the given
// bytes.
func (d *Device) CreateVertexBufferWith(name string, data []byte) (*VertexBuffer, error) {
	buf, err := d.WGPU.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    name,
		Contents: data,
		Usage:    wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	return &VertexBuffer{WGPU: buf, Cap: len(data), Name: name}, nil
}

// CreateIndexBuffer allocates a 16-bit index buffer initialized with the
// given indices, zero-padded to a multiple of 4 elements.
func (d *Device) CreateIndexBuffer(name string, indices []uint16) (*IndexBuffer, error) {
	padded := padIndices16(indices)
	buf, err := d.WGPU.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    name,
		Contents: safeish.SliceCast[[]byte](padded),
		Usage:    wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	return &IndexBuffer{
		WGPU:     buf,
		Cap:      2 * len(padded),
		Elements: len(indices),
		Name:     name,
	}, nil
}

// CreateIndexBuffer32 allocates a 32-bit index buffer initialized with the
// given indices.
func (d *Device) CreateIndexBuffer32(name string, indices []uint32) (*IndexBuffer32, error) {
	buf, err := d.WGPU.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    name,
		Contents: safeish.SliceCast[[]byte](indices),
		Usage:    wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	return &IndexBuffer32{
		WGPU:     buf,
		Cap:      4 * len(indices),
		Elements: len(indices),
		Name:     name,
	}, nil
}

// CreateUniformBuffer allocates a uniform buffer holding count elements of
// elemSize bytes, initialized with the given bytes.
func (d *Device) CreateUniformBuffer(name string, data []byte, elemSize, count int) (*UniformBuffer, error) {
	buf, err := d.WGPU.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    name,
		Contents: data,
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	return &UniformBuffer{WGPU: buf, ElemSize: elemSize, Count: count, Name: name}, nil
}

// UpdateVertexBuffer writes data into the buffer, reallocating when it does
// not fit. On reallocation the caller's buffer struct is rewritten in place
// with the new handle and the old handle is released; stored pointers stay
// valid.
func (d *Device) UpdateVertexBuffer(b *VertexBuffer, data []byte) error {
	if !needsGrowth(len(data), b.Cap) {
		d.Queue.WriteBuffer(b.WGPU, 0, data)
		return nil
	}
	logger().Info("vertex buffer grown", "name", b.Name, "old", b.Cap, "new", len(data))
	grown, err := d.CreateVertexBufferWith(b.Name, data)
	if err != nil {
		return err
	}
	b.WGPU.Release()
	*b = *grown
	return nil
}

// UpdateIndexBuffer writes 16-bit indices into the buffer, padding the write
// to a multiple of 4 elements and reallocating when the padded data does not
// fit. Elements reports the unpadded count.
func (d *Device) UpdateIndexBuffer(b *IndexBuffer, indices []uint16) error {
	padded := padIndices16(indices)
	if !needsGrowth(2*len(padded), b.Cap) {
		d.Queue.WriteBuffer(b.WGPU, 0, safeish.SliceCast[[]byte](padded))
		b.Elements = len(indices)
		return nil
	}
	logger().Info("index buffer grown", "name", b.Name, "old", b.Cap, "new", 2*len(padded))
	grown, err := d.CreateIndexBuffer(b.Name, indices)
	if err != nil {
		return err
	}
	b.WGPU.Release()
	*b = *grown
	return nil
}

// UpdateIndexBuffer32 writes 32-bit indices into the buffer, reallocating
// when they do not fit.
func (d *Device) UpdateIndexBuffer32(b *IndexBuffer32, indices []uint32) error {
	if !needsGrowth(4*len(indices), b.Cap) {
		d.Queue.WriteBuffer(b.WGPU, 0, safeish.SliceCast[[]byte](indices))
		b.Elements = len(indices)
		return nil
	}
	logger().Info("index buffer grown", "name", b.Name, "old", b.Cap, "new", 4*len(indices))
	grown, err := d.CreateIndexBuffer32(b.Name, indices)
	if err != nil {
		return err
	}
	b.WGPU.Release()
	*b = *grown
	return nil
}

// UpdateUniformBuffer writes data into the buffer, reallocating when it does
// not fit. Element size and count are recomputed from the old element size
// on growth.
func (d *Device) UpdateUniformBuffer(b *UniformBuffer, data []byte) error {
	if !needsGrowth(len(data), b.ElemSize*b.Count) {
		d.Queue.WriteBuffer(b.WGPU, 0, data)
		return nil
	}
	logger().Info("uniform buffer grown",
		"name", b.Name, "old", b.ElemSize*b.Count, "new", len(data))
	grown, err := d.CreateUniformBuffer(b.Name, data, b.ElemSize, len(data)/b.ElemSize)
	if err != nil {
		return err
	}
	b.WGPU.Release()
	*b = *grown
	return nil
}

// CreateTexture allocates a sampleable RGBA texture of the given size.
func (d *Device) CreateTexture(name string, size geom.Size[int]) (*Texture, error) {
	return d.createTexture(name, size, wgpu.TextureFormatRGBA8UnormSrgb,
		wgpu.TextureUsageTextureBinding|wgpu.TextureUsageCopyDst|wgpu.TextureUsageCopySrc, 1)
}

func (d *Device) createTexture(name string, size geom.Size[int], format wgpu.TextureFormat, usage wgpu.TextureUsage, samples uint32) (*Texture, error) {
	extent := wgpu.Extent3D{
		Width:              uint32(size.Width),
		Height:             uint32(size.Height),
		DepthOrArrayLayers: 1,
	}
	tex, err := d.WGPU.CreateTexture(&wgpu.TextureDescriptor{
		Label:         name,
		Size:          extent,
		MipLevelCount: 1,
		SampleCount:   samples,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         usage,
	})
	if err != nil {
		return nil, err
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, err
	}
	return &Texture{
		WGPU:   tex,
		View:   view,
		Extent: extent,
		Format: format,
		Size:   size,
		Name:   name,
	}, nil
}

// CreateFrameBuffer allocates an off-screen render target that can also be
// sampled by later passes.
func (d *Device) CreateFrameBuffer(name string, size geom.Size[int], format wgpu.TextureFormat) (*FrameBuffer, error) {
	tex, err := d.createTexture(name, size, format,
		wgpu.TextureUsageRenderAttachment|wgpu.TextureUsageTextureBinding|wgpu.TextureUsageCopySrc, 1)
	if err != nil {
		return nil, err
	}
	return &FrameBuffer{Texture: *tex}, nil
}

// CreateDepthBuffer allocates a depth attachment matching the given size and
// sample count.
func (d *Device) CreateDepthBuffer(size geom.Size[int], samples uint32) (*DepthBuffer, error) {
	tex, err := d.WGPU.CreateTexture(&wgpu.TextureDescriptor{
		Label: "depth buffer",
		Size: wgpu.Extent3D{
			Width:              uint32(size.Width),
			Height:             uint32(size.Height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   samples,
		Dimension:     wgpu.TextureDimension2D,
		Format:        DepthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return nil, err
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, err
	}
	return &DepthBuffer{WGPU: tex, View: view, Format: DepthFormat}, nil
}

// CreateSampler builds a sampler with the given filter modes and repeat
// addressing.
func (d *Device) CreateSampler(minFilter, magFilter wgpu.FilterMode) (*Sampler, error) {
	s, err := d.WGPU.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "parrot sampler",
		AddressModeU:  wgpu.AddressModeRepeat,
		AddressModeV:  wgpu.AddressModeRepeat,
		AddressModeW:  wgpu.AddressModeRepeat,
		MagFilter:     magFilter,
		MinFilter:     minFilter,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return nil, err
	}
	return &Sampler{WGPU: s}, nil
}

// CreateBindingGroupLayout builds the native layout for a binding set.
// Binding indices are assigned sequentially in declaration order.
func (d *Device) CreateBindingGroupLayout(setIndex uint32, set Set) (BindingGroupLayout, error) {
	entries := make([]wgpu.BindGroupLayoutEntry, len(set.Bindings))
	for i, b := range set.Bindings {
		entries[i] = b.layoutEntry(uint32(i))
	}
	layout, err := d.WGPU.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   set.Name,
		Entries: entries,
	})
	if err != nil {
		return BindingGroupLayout{}, err
	}
	return BindingGroupLayout{
		WGPU:     layout,
		Size:     len(set.Bindings),
		SetIndex: setIndex,
	}, nil
}

// CreateBindingGroup binds concrete resources against a layout. Panics if
// the resource count does not match the layout's slot count.
func (d *Device) CreateBindingGroup(name string, layout BindingGroupLayout, binds ...Bind) (BindingGroup, error) {
	if len(binds) != layout.Size {
		panic(fmt.Sprintf("parrot: binding group %q given %d resources, layout declares %d",
			name, len(binds), layout.Size))
	}
	entries := make([]wgpu.BindGroupEntry, len(binds))
	for i, b := range binds {
		entries[i] = b.BindingEntry(uint32(i))
	}
	group, err := d.WGPU.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   name,
		Layout:  layout.WGPU,
		Entries: entries,
	})
	if err != nil {
		return BindingGroup{}, err
	}
	return BindingGroup{WGPU: group, SetIndex: layout.SetIndex}, nil
}

// CreateShaderModule compiles a shader source into a native module. SPIR-V
// sources return [ErrSPIRVUnsupported]; the backend accepts WGSL only.
func (d *Device) CreateShaderModule(name string, src ShaderSource) (*wgpu.ShaderModule, error) {
	if !src.IsWGSL() {
		return nil, ErrSPIRVUnsupported
	}
	return d.WGPU.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          name,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: src.wgsl},
	})
}

// CreatePipeline constructs a render pipeline from a description: binding
// group layouts are built in set order, the shader is compiled, and blend,
// depth, and multisample state are fixed into the pipeline. Native
// construction errors propagate unmodified.
func (d *Device) CreatePipeline(
	desc PipelineDescription,
	blending Blending,
	format wgpu.TextureFormat,
	sampleCount uint32,
	depth bool,
) (Pipeline, error) {
	sets := make([]BindingGroupLayout, len(desc.Sets))
	native := make([]*wgpu.BindGroupLayout, len(desc.Sets))
	for i, set := range desc.Sets {
		layout, err := d.CreateBindingGroupLayout(uint32(i), set)
		if err != nil {
			return Pipeline{}, err
		}
		sets[i] = layout
		native[i] = layout.WGPU
	}
	pipeLayout, err := d.WGPU.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            desc.Name,
		BindGroupLayouts: native,
	})
	if err != nil {
		return Pipeline{}, err
	}
	defer pipeLayout.Release()

	module, err := d.CreateShaderModule(desc.Name, desc.Shader)
	if err != nil {
		return Pipeline{}, err
	}
	defer module.Release()

	pipeline, err := d.WGPU.CreateRenderPipeline(
		renderPipelineDescriptor(desc, pipeLayout, module, blending, format, sampleCount, depth))
	if err != nil {
		return Pipeline{}, err
	}
	logger().Info("pipeline created",
		"name", desc.Name, "sets", len(desc.Sets), "samples", sampleCount, "depth", depth)
	return Pipeline{
		WGPU:   pipeline,
		Layout: PipelineLayout{Sets: sets},
		Vertex: desc.VertexLayout,
		Name:   desc.Name,
	}, nil
}
