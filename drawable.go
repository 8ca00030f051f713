package pigeon

import (
	"github.com/Chameko/pigeon/geom"
	"github.com/Chameko/pigeon/parrot"
)

// Breakdown is a shape reduced to the raw form the pipelines consume:
// vertices, indices into them, and the texture the shape samples (nil for
// colored shapes).
type Breakdown[V any] struct {
	Vertices []V
	Indices  []uint16
	Texture  *Texture
}

// Drawable is implemented by anything that can reduce itself to vertices for
// one of the pipelines. Sprite breaks down to [QuadVertex]; the colored
// primitives break down to [ShapeVertex].
type Drawable[V any] interface {
	Breakdown() Breakdown[V]
}

// Scene is the per-frame input to a pipeline's Prepare hook: the shapes to
// draw and the world-to-clip transform.
type Scene[V any] struct {
	Shapes    []Breakdown[V]
	Transform geom.Transform3
}

// Renderer is implemented by pipelines that know how to issue their own
// draw calls into an open pass.
type Renderer interface {
	Render(pass parrot.Pass)
}

// Initial buffer capacities, in elements. Sized so typical scenes never
// regrow mid-run.
const (
	vertexInitSize = 10000
	indexInitSize  = 10000
)
