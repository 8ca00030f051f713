package pigeon

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chameko/pigeon/geom"
	"github.com/Chameko/pigeon/parrot"
)

func TestRectangleBreakdown(t *testing.T) {
	rect := NewRectangle(geom.Pt3[float32](0, 0, 0), geom.Sz[float32](2, 2), parrot.Red)

	b := rect.Breakdown()
	require.Len(t, b.Vertices, 4)
	assert.Equal(t, []uint16{0, 1, 3, 0, 3, 2}, b.Indices)
	assert.Nil(t, b.Texture)

	assert.Equal(t, [3]float32{-1, 1, 0}, b.Vertices[0].Pos)
	assert.Equal(t, [3]float32{1, 1, 0}, b.Vertices[1].Pos)
	assert.Equal(t, [3]float32{-1, -1, 0}, b.Vertices[2].Pos)
	assert.Equal(t, [3]float32{1, -1, 0}, b.Vertices[3].Pos)
	for _, v := range b.Vertices {
		assert.Equal(t, [4]float32{1, 0, 0, 1}, v.Color)
	}
}

func TestRectangleRotation(t *testing.T) {
	rect := NewRectangle(geom.Pt3[float32](0, 0, 0), geom.Sz[float32](2, 2), parrot.White)
	rect.Rotate(math.Pi / 2)

	b := rect.Breakdown()
	// Top-left corner (-1, 1) rotates a quarter turn to (-1, -1).
	assert.InDelta(t, -1, b.Vertices[0].Pos[0], 1e-6)
	assert.InDelta(t, -1, b.Vertices[0].Pos[1], 1e-6)
}

func TestTriangleBreakdown(t *testing.T) {
	tri := NewTriangle(
		geom.Pt3[float32](0, 1, 0),
		geom.Pt3[float32](-1, -1, 0),
		geom.Pt3[float32](1, -1, 0),
		geom.Pt3[float32](5, 5, 0.25),
		parrot.Blue,
	)

	b := tri.Breakdown()
	require.Len(t, b.Vertices, 3)
	assert.Equal(t, []uint16{0, 1, 2}, b.Indices)

	assert.Equal(t, [3]float32{5, 6, 0.25}, b.Vertices[0].Pos)
	assert.Equal(t, [3]float32{4, 4, 0.25}, b.Vertices[1].Pos)
	assert.Equal(t, [3]float32{6, 4, 0.25}, b.Vertices[2].Pos)
}

func TestBatchShapes(t *testing.T) {
	rect := NewRectangle(geom.Pt3[float32](0, 0, 0), geom.Sz[float32](2, 2), parrot.Green)
	tri := NewTriangle(
		geom.Pt3[float32](0, 1, 0),
		geom.Pt3[float32](-1, -1, 0),
		geom.Pt3[float32](1, -1, 0),
		geom.Pt3[float32](0, 0, 0),
		parrot.Green,
	)

	vertices, indices := batchShapes([]Breakdown[ShapeVertex]{
		rect.Breakdown(),
		tri.Breakdown(),
	})

	assert.Len(t, vertices, 7)
	assert.Equal(t, []uint16{0, 1, 3, 0, 3, 2, 4, 5, 6}, indices)
}
