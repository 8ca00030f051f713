package pigeon

import (
	"github.com/chewxy/math32"

	"github.com/Chameko/pigeon/geom"
	"github.com/Chameko/pigeon/parrot"
)

// Rectangle is a solid-colored rectangle with its origin at its centre.
// Drawn by [ShapePipe].
type Rectangle struct {
	Origin   geom.Point3[float32]
	Size     geom.Size[float32]
	Rotation float32
	Color    parrot.Rgba
}

// NewRectangle creates a rectangle with no rotation.
func NewRectangle(origin geom.Point3[float32], size geom.Size[float32], color parrot.Rgba) *Rectangle {
	return &Rectangle{Origin: origin, Size: size, Color: color}
}

// Rotate sets the rectangle's rotation in radians.
func (r *Rectangle) Rotate(radians float32) {
	r.Rotation = radians
}

// Translate moves the rectangle's origin.
func (r *Rectangle) Translate(dx, dy float32) {
	r.Origin.X += dx
	r.Origin.Y += dy
}

// Scale sets the rectangle's size.
func (r *Rectangle) Scale(size geom.Size[float32]) {
	r.Size = size
}

// Breakdown implements [Drawable].
func (r *Rectangle) Breakdown() Breakdown[ShapeVertex] {
	corners := quadCorners(r.Size.Width/2, r.Size.Height/2, r.Rotation, r.Origin)
	return Breakdown[ShapeVertex]{
		Vertices: []ShapeVertex{
			NewShapeVertex(corners[0], r.Color),
			NewShapeVertex(corners[1], r.Color),
			NewShapeVertex(corners[2], r.Color),
			NewShapeVertex(corners[3], r.Color),
		},
		Indices: []uint16{0, 1, 3, 0, 3, 2},
	}
}

// Triangle is a solid-colored triangle given by three object-space points
// and a world-space origin. Drawn by [ShapePipe].
type Triangle struct {
	A        geom.Point3[float32]
	B        geom.Point3[float32]
	C        geom.Point3[float32]
	Origin   geom.Point3[float32]
	Rotation float32
	Color    parrot.Rgba
}

// NewTriangle creates a triangle with no rotation.
func NewTriangle(a, b, c, origin geom.Point3[float32], color parrot.Rgba) *Triangle {
	return &Triangle{A: a, B: b, C: c, Origin: origin, Color: color}
}

// Rotate sets the triangle's rotation in radians.
func (t *Triangle) Rotate(radians float32) {
	t.Rotation = radians
}

// Translate moves the triangle's origin.
func (t *Triangle) Translate(dx, dy float32) {
	t.Origin.X += dx
	t.Origin.Y += dy
}

// Scale scales the triangle's points about its origin.
func (t *Triangle) Scale(x, y float32) {
	for _, p := range []*geom.Point3[float32]{&t.A, &t.B, &t.C} {
		p.X *= x
		p.Y *= y
	}
}

// Breakdown implements [Drawable].
func (t *Triangle) Breakdown() Breakdown[ShapeVertex] {
	sin, cos := math32.Sincos(t.Rotation)
	points := [3]geom.Point3[float32]{t.A, t.B, t.C}
	vertices := make([]ShapeVertex, 3)
	for i, p := range points {
		world := geom.Pt3(
			p.X*cos-p.Y*sin+t.Origin.X,
			p.X*sin+p.Y*cos+t.Origin.Y,
			t.Origin.Z,
		)
		vertices[i] = NewShapeVertex(world, t.Color)
	}
	return Breakdown[ShapeVertex]{
		Vertices: vertices,
		Indices:  []uint16{0, 1, 2},
	}
}
