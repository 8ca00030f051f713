package pigeon

import (
	"github.com/chewxy/math32"

	"github.com/Chameko/pigeon/geom"
)

// Sprite is a textured rectangle with its origin at its centre. Z selects
// draw order against the depth buffer (smaller is closer).
type Sprite struct {
	// Origin is the centre of the sprite in world space.
	Origin geom.Point3[float32]
	Size   geom.Size[float32]
	// Rotation about the origin, in radians counter-clockwise.
	Rotation float32
	Texture  *Texture
}

// NewSprite creates a sprite with no rotation.
func NewSprite(origin geom.Point3[float32], size geom.Size[float32], tex *Texture) *Sprite {
	return &Sprite{Origin: origin, Size: size, Texture: tex}
}

// Rotate sets the sprite's rotation.
func (s *Sprite) Rotate(radians float32) {
	s.Rotation = radians
}

// Translate moves the sprite's origin.
func (s *Sprite) Translate(dx, dy float32) {
	s.Origin.X += dx
	s.Origin.Y += dy
}

// Scale sets the sprite's size.
func (s *Sprite) Scale(size geom.Size[float32]) {
	s.Size = size
}

// Breakdown implements [Drawable]. The quad's corners are rotated about the
// origin in object space, then translated into world space.
func (s *Sprite) Breakdown() Breakdown[QuadVertex] {
	w, h := s.Size.Width/2, s.Size.Height/2
	corners := quadCorners(w, h, s.Rotation, s.Origin)
	return Breakdown[QuadVertex]{
		Vertices: []QuadVertex{
			NewQuadVertex(corners[0], 0, 0),
			NewQuadVertex(corners[1], 1, 0),
			NewQuadVertex(corners[2], 0, 1),
			NewQuadVertex(corners[3], 1, 1),
		},
		Indices: []uint16{0, 1, 3, 0, 3, 2},
		Texture: s.Texture,
	}
}

// quadCorners returns the world-space corners of a half-width by half-height
// rectangle rotated about its centre, in top-left, top-right, bottom-left,
// bottom-right order.
func quadCorners(w, h, rotation float32, origin geom.Point3[float32]) [4]geom.Point3[float32] {
	object := [4]geom.Point[float32]{
		geom.Pt(-w, h),
		geom.Pt(w, h),
		geom.Pt(-w, -h),
		geom.Pt(w, -h),
	}
	sin, cos := math32.Sincos(rotation)
	var out [4]geom.Point3[float32]
	for i, p := range object {
		out[i] = geom.Pt3(
			p.X*cos-p.Y*sin+origin.X,
			p.X*sin+p.Y*cos+origin.Y,
			origin.Z,
		)
	}
	return out
}
