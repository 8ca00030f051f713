package pigeon

import (
	_ "embed"
	"fmt"
	"structs"

	"github.com/cogentcore/webgpu/wgpu"
	"honnef.co/go/safeish"

	"github.com/Chameko/pigeon/geom"
	"github.com/Chameko/pigeon/parrot"
)

//go:embed shaders/quad.wgsl
var quadShader string

// QuadVertex is the vertex format of the textured quad pipeline: a world
// position and texture coordinates.
type QuadVertex struct {
	_ structs.HostLayout

	Pos [3]float32
	UV  [2]float32
}

// NewQuadVertex builds a vertex from a world position and u/v coordinates.
func NewQuadVertex(pos geom.Point3[float32], u, v float32) QuadVertex {
	return QuadVertex{Pos: [3]float32{pos.X, pos.Y, pos.Z}, UV: [2]float32{u, v}}
}

// Group is one contiguous run of indices drawn with a single texture.
type Group struct {
	Start uint32
	End   uint32
	TexID uint64
}

// QuadPipe draws textured quads. Each frame it batches every sprite
// breakdown into one vertex and one index buffer, groups runs of indices by
// texture, and binds each texture once per run.
type QuadPipe struct {
	VertexBuffer *parrot.VertexBuffer
	IndexBuffer  *parrot.IndexBuffer

	groups       []Group
	textureBinds map[uint64]parrot.BindingGroup
	core         parrot.PipelineCore
}

// Description implements [parrot.Plumber]. Set 0 holds the texture and
// sampler, set 1 the world-to-clip transform.
func (q *QuadPipe) Description() parrot.PipelineDescription {
	return parrot.PipelineDescription{
		VertexLayout: parrot.NewVertexLayout(parrot.Floatx3, parrot.Floatx2),
		Sets: []parrot.Set{
			{
				Name: "quad textures",
				Bindings: []parrot.Binding{
					{Kind: parrot.TextureBinding, Stage: wgpu.ShaderStageFragment},
					{Kind: parrot.SamplerBinding, Stage: wgpu.ShaderStageFragment},
				},
			},
			{
				Name: "quad transform",
				Bindings: []parrot.Binding{
					{Kind: parrot.UniformBufferBinding, Stage: wgpu.ShaderStageVertex},
				},
			},
		},
		Shader: parrot.WGSL(quadShader),
		Name:   "quad pipeline",
	}
}

// Setup implements [parrot.Plumber].
func (q *QuadPipe) Setup(pipeline parrot.Pipeline, painter *parrot.Painter) {
	vertexBuffer, err := painter.Device.CreateVertexBuffer("quad vertices",
		vertexInitSize*parrot.NewVertexLayout(parrot.Floatx3, parrot.Floatx2).Stride())
	if err != nil {
		panic(fmt.Sprintf("pigeon: quad pipeline setup: %v", err))
	}
	indexBuffer, err := painter.Device.CreateIndexBuffer("quad indices",
		make([]uint16, indexInitSize))
	if err != nil {
		panic(fmt.Sprintf("pigeon: quad pipeline setup: %v", err))
	}
	indexBuffer.Elements = 0

	transform, err := parrot.NewUniformBuffer(painter, "quad transform",
		[]geom.Transform3{geom.Identity()})
	if err != nil {
		panic(fmt.Sprintf("pigeon: quad pipeline setup: %v", err))
	}
	bindGroup, err := painter.NewBindingGroup("quad transform",
		pipeline.Layout.Sets[1], transform)
	if err != nil {
		panic(fmt.Sprintf("pigeon: quad pipeline setup: %v", err))
	}

	q.VertexBuffer = vertexBuffer
	q.IndexBuffer = indexBuffer
	q.textureBinds = map[uint64]parrot.BindingGroup{}
	q.core = parrot.PipelineCore{
		Pipeline: pipeline,
		Bindings: []parrot.BindingGroup{bindGroup},
		Uniforms: []*parrot.UniformBuffer{transform},
	}
}

// Core implements [parrot.Plumber].
func (q *QuadPipe) Core() *parrot.PipelineCore {
	return &q.core
}

// Prepare implements [parrot.Preparer]. It batches the scene's breakdowns
// into the pipeline's buffers, binds any textures seen for the first time,
// and hands the scene transform back for upload.
func (q *QuadPipe) Prepare(scene Scene[QuadVertex], painter *parrot.Painter) []parrot.UniformUpdate {
	vertices, indices, groups := batchQuads(scene.Shapes)
	q.groups = groups

	for _, shape := range scene.Shapes {
		if _, ok := q.textureBinds[shape.Texture.ID]; !ok {
			q.AddTexture(painter, shape.Texture)
		}
	}

	if err := parrot.UpdateVertexBuffer(painter, q.VertexBuffer, vertices); err != nil {
		logger().Error("quad vertex update failed", "err", err)
	}
	if err := painter.UpdateIndexBuffer(q.IndexBuffer, indices); err != nil {
		logger().Error("quad index update failed", "err", err)
	}

	transform := scene.Transform
	return []parrot.UniformUpdate{{
		Buffer: q.core.Uniforms[0],
		Data:   safeish.SliceCast[[]byte]([]geom.Transform3{transform}),
	}}
}

// AddTexture creates the binding group for a texture against set 0.
func (q *QuadPipe) AddTexture(painter *parrot.Painter, tex *Texture) {
	bindGroup, err := painter.NewBindingGroup(tex.Name+" binding",
		q.core.Pipeline.Layout.Sets[0], tex.Parrot, tex.Sampler)
	if err != nil {
		panic(fmt.Sprintf("pigeon: binding texture %q: %v", tex.Name, err))
	}
	q.textureBinds[tex.ID] = bindGroup
}

// Render implements [Renderer]: one indexed draw per texture group,
// rebinding only when the texture changes.
func (q *QuadPipe) Render(pass parrot.Pass) {
	if len(q.groups) == 0 {
		return
	}
	pass.SetPlumber(q)
	pass.SetVertexBuffer(0, q.VertexBuffer)
	pass.SetIndexBuffer(q.IndexBuffer)

	prev := uint64(0)
	for _, g := range q.groups {
		if g.TexID != prev {
			bind, ok := q.textureBinds[g.TexID]
			if !ok {
				panic(fmt.Sprintf("pigeon: no binding group for texture %d", g.TexID))
			}
			pass.SetBinding(bind)
			prev = g.TexID
		}
		pass.DrawIndexed(g.Start, g.End-g.Start)
	}
}

// batchQuads concatenates textured breakdowns into one vertex and one index
// list. Indices are offset by the running vertex count, and consecutive
// breakdowns sharing a texture are merged into a single draw group. Panics
// on a breakdown with no texture; untextured shapes belong to [ShapePipe].
func batchQuads(shapes []Breakdown[QuadVertex]) ([]QuadVertex, []uint16, []Group) {
	var vertices []QuadVertex
	var indices []uint16
	var groups []Group

	for _, shape := range shapes {
		if shape.Texture == nil {
			panic("pigeon: textured shape has no texture")
		}
		base := uint16(len(vertices))
		vertices = append(vertices, shape.Vertices...)
		start := uint32(len(indices))
		for _, idx := range shape.Indices {
			indices = append(indices, idx+base)
		}
		end := uint32(len(indices))

		if n := len(groups); n > 0 && groups[n-1].TexID == shape.Texture.ID {
			groups[n-1].End = end
		} else {
			groups = append(groups, Group{Start: start, End: end, TexID: shape.Texture.ID})
		}
	}
	return vertices, indices, groups
}
