// Package geom provides the small set of float32 geometry types shared by
// parrot and pigeon: sizes, points, rects, and 4x4 transforms suitable for
// direct upload to GPU uniform buffers.
package geom

import (
	"golang.org/x/exp/constraints"
)

// Scalar is the set of types geom's generic containers accept.
type Scalar interface {
	constraints.Integer | constraints.Float
}

// Size is a width/height pair.
type Size[T Scalar] struct {
	Width  T
	Height T
}

func Sz[T Scalar](w, h T) Size[T] {
	return Size[T]{Width: w, Height: h}
}

// Area returns Width * Height.
func (s Size[T]) Area() T {
	return s.Width * s.Height
}

func (s Size[T]) IsEmpty() bool {
	return s.Width == 0 || s.Height == 0
}

// Point is a 2D coordinate.
type Point[T Scalar] struct {
	X T
	Y T
}

func Pt[T Scalar](x, y T) Point[T] {
	return Point[T]{X: x, Y: y}
}

func (p Point[T]) Add(q Point[T]) Point[T] {
	return Point[T]{X: p.X + q.X, Y: p.Y + q.Y}
}

// Point3 is a 3D coordinate. The scene layer uses Z for draw ordering
// against the depth buffer.
type Point3[T Scalar] struct {
	X T
	Y T
	Z T
}

func Pt3[T Scalar](x, y, z T) Point3[T] {
	return Point3[T]{X: x, Y: y, Z: z}
}

// Rect is an origin plus a size.
type Rect[T Scalar] struct {
	Origin Point[T]
	Size   Size[T]
}

func Rt[T Scalar](x, y, w, h T) Rect[T] {
	return Rect[T]{Origin: Pt(x, y), Size: Sz(w, h)}
}

// FromSize returns a rect anchored at the origin.
func FromSize[T Scalar](s Size[T]) Rect[T] {
	return Rect[T]{Size: s}
}

func (r Rect[T]) Area() T {
	return r.Size.Area()
}

func (r Rect[T]) Width() T {
	return r.Size.Width
}

func (r Rect[T]) Height() T {
	return r.Size.Height
}

// Canon returns the rect with a non-negative size, flipping the origin as
// needed so that Origin is the minimum corner.
func (r Rect[T]) Canon() Rect[T] {
	if r.Size.Width < 0 {
		r.Origin.X += r.Size.Width
		r.Size.Width = -r.Size.Width
	}
	if r.Size.Height < 0 {
		r.Origin.Y += r.Size.Height
		r.Size.Height = -r.Size.Height
	}
	return r
}
