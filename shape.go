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

//go:embed shaders/shape.wgsl
var shapeShader string

// ShapeVertex is the vertex format of the colored shape pipeline: a world
// position and a vertex color.
type ShapeVertex struct {
	_ structs.HostLayout

	Pos   [3]float32
	Color [4]float32
}

// NewShapeVertex builds a vertex from a world position and color.
func NewShapeVertex(pos geom.Point3[float32], color parrot.Rgba) ShapeVertex {
	return ShapeVertex{
		Pos:   [3]float32{pos.X, pos.Y, pos.Z},
		Color: [4]float32{color.R, color.G, color.B, color.A},
	}
}

// ShapePipe draws solid-colored shapes. Like [QuadPipe] it batches every
// breakdown into one vertex and one index buffer per frame, but colored
// shapes need no per-shape bindings so the whole batch is a single draw.
type ShapePipe struct {
	VertexBuffer *parrot.VertexBuffer
	IndexBuffer  *parrot.IndexBuffer

	elements uint32
	core     parrot.PipelineCore
}

// Description implements [parrot.Plumber]. Set 0 holds the world-to-clip
// transform.
func (s *ShapePipe) Description() parrot.PipelineDescription {
	return parrot.PipelineDescription{
		VertexLayout: parrot.NewVertexLayout(parrot.Floatx3, parrot.Floatx4),
		Sets: []parrot.Set{
			{
				Name: "shape transform",
				Bindings: []parrot.Binding{
					{Kind: parrot.UniformBufferBinding, Stage: wgpu.ShaderStageVertex},
				},
			},
		},
		Shader: parrot.WGSL(shapeShader),
		Name:   "shape pipeline",
	}
}

// Setup implements [parrot.Plumber].
func (s *ShapePipe) Setup(pipeline parrot.Pipeline, painter *parrot.Painter) {
	vertexBuffer, err := painter.Device.CreateVertexBuffer("shape vertices",
		vertexInitSize*parrot.NewVertexLayout(parrot.Floatx3, parrot.Floatx4).Stride())
	if err != nil {
		panic(fmt.Sprintf("pigeon: shape pipeline setup: %v", err))
	}
	indexBuffer, err := painter.Device.CreateIndexBuffer("shape indices",
		make([]uint16, indexInitSize))
	if err != nil {
		panic(fmt.Sprintf("pigeon: shape pipeline setup: %v", err))
	}
	indexBuffer.Elements = 0

	transform, err := parrot.NewUniformBuffer(painter, "shape transform",
		[]geom.Transform3{geom.Identity()})
	if err != nil {
		panic(fmt.Sprintf("pigeon: shape pipeline setup: %v", err))
	}
	bindGroup, err := painter.NewBindingGroup("shape transform",
		pipeline.Layout.Sets[0], transform)
	if err != nil {
		panic(fmt.Sprintf("pigeon: shape pipeline setup: %v", err))
	}

	s.VertexBuffer = vertexBuffer
	s.IndexBuffer = indexBuffer
	s.core = parrot.PipelineCore{
		Pipeline: pipeline,
		Bindings: []parrot.BindingGroup{bindGroup},
		Uniforms: []*parrot.UniformBuffer{transform},
	}
}

// Core implements [parrot.Plumber].
func (s *ShapePipe) Core() *parrot.PipelineCore {
	return &s.core
}

// Prepare implements [parrot.Preparer].
func (s *ShapePipe) Prepare(scene Scene[ShapeVertex], painter *parrot.Painter) []parrot.UniformUpdate {
	vertices, indices := batchShapes(scene.Shapes)
	s.elements = uint32(len(indices))

	if err := parrot.UpdateVertexBuffer(painter, s.VertexBuffer, vertices); err != nil {
		logger().Error("shape vertex update failed", "err", err)
	}
	if err := painter.UpdateIndexBuffer(s.IndexBuffer, indices); err != nil {
		logger().Error("shape index update failed", "err", err)
	}

	transform := scene.Transform
	return []parrot.UniformUpdate{{
		Buffer: s.core.Uniforms[0],
		Data:   safeish.SliceCast[[]byte]([]geom.Transform3{transform}),
	}}
}

// Render implements [Renderer].
func (s *ShapePipe) Render(pass parrot.Pass) {
	if s.elements == 0 {
		return
	}
	pass.SetPlumber(s)
	pass.SetVertexBuffer(0, s.VertexBuffer)
	pass.SetIndexBuffer(s.IndexBuffer)
	pass.DrawIndexed(0, s.elements)
}

// batchShapes concatenates colored breakdowns into one vertex and one index
// list, offsetting each breakdown's indices by the running vertex count.
func batchShapes(shapes []Breakdown[ShapeVertex]) ([]ShapeVertex, []uint16) {
	var vertices []ShapeVertex
	var indices []uint16
	for _, shape := range shapes {
		base := uint16(len(vertices))
		vertices = append(vertices, shape.Vertices...)
		for _, idx := range shape.Indices {
			indices = append(indices, idx+base)
		}
	}
	return vertices, indices
}
