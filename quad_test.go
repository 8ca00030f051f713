package pigeon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chameko/pigeon/geom"
)

func TestSpriteBreakdown(t *testing.T) {
	tex := &Texture{ID: 1, Name: "test"}
	sprite := NewSprite(geom.Pt3[float32](10, 20, 0.5), geom.Sz[float32](4, 2), tex)

	b := sprite.Breakdown()
	require.Len(t, b.Vertices, 4)
	assert.Equal(t, []uint16{0, 1, 3, 0, 3, 2}, b.Indices)
	assert.Same(t, tex, b.Texture)

	// Corners in top-left, top-right, bottom-left, bottom-right order,
	// centred on the origin.
	assert.Equal(t, [3]float32{8, 21, 0.5}, b.Vertices[0].Pos)
	assert.Equal(t, [3]float32{12, 21, 0.5}, b.Vertices[1].Pos)
	assert.Equal(t, [3]float32{8, 19, 0.5}, b.Vertices[2].Pos)
	assert.Equal(t, [3]float32{12, 19, 0.5}, b.Vertices[3].Pos)

	assert.Equal(t, [2]float32{0, 0}, b.Vertices[0].UV)
	assert.Equal(t, [2]float32{1, 0}, b.Vertices[1].UV)
	assert.Equal(t, [2]float32{0, 1}, b.Vertices[2].UV)
	assert.Equal(t, [2]float32{1, 1}, b.Vertices[3].UV)
}

func TestSpriteTranslate(t *testing.T) {
	sprite := NewSprite(geom.Pt3[float32](0, 0, 0), geom.Sz[float32](2, 2), &Texture{ID: 1})
	sprite.Translate(5, -3)
	assert.Equal(t, geom.Pt3[float32](5, -3, 0), sprite.Origin)
}

func TestBatchQuadsOffsetsIndices(t *testing.T) {
	texA := &Texture{ID: 1}
	spriteA := NewSprite(geom.Pt3[float32](0, 0, 0), geom.Sz[float32](2, 2), texA)
	spriteB := NewSprite(geom.Pt3[float32](10, 0, 0), geom.Sz[float32](2, 2), texA)

	vertices, indices, groups := batchQuads([]Breakdown[QuadVertex]{
		spriteA.Breakdown(),
		spriteB.Breakdown(),
	})

	assert.Len(t, vertices, 8)
	// The second breakdown's indices are offset by the first's vertex count.
	assert.Equal(t, []uint16{0, 1, 3, 0, 3, 2, 4, 5, 7, 4, 7, 6}, indices)

	// Consecutive same-texture ranges merge into one group.
	require.Len(t, groups, 1)
	assert.Equal(t, Group{Start: 0, End: 12, TexID: 1}, groups[0])
}

func TestBatchQuadsGroupsByTexture(t *testing.T) {
	texA := &Texture{ID: 1}
	texB := &Texture{ID: 2}
	mk := func(tex *Texture) Breakdown[QuadVertex] {
		return NewSprite(geom.Pt3[float32](0, 0, 0), geom.Sz[float32](1, 1), tex).Breakdown()
	}

	_, _, groups := batchQuads([]Breakdown[QuadVertex]{
		mk(texA), mk(texA), mk(texB), mk(texA),
	})

	require.Len(t, groups, 3)
	assert.Equal(t, Group{Start: 0, End: 12, TexID: 1}, groups[0])
	assert.Equal(t, Group{Start: 12, End: 18, TexID: 2}, groups[1])
	assert.Equal(t, Group{Start: 18, End: 24, TexID: 1}, groups[2])
}

func TestBatchQuadsUntexturedPanics(t *testing.T) {
	assert.Panics(t, func() {
		batchQuads([]Breakdown[QuadVertex]{{
			Vertices: make([]QuadVertex, 4),
			Indices:  []uint16{0, 1, 2},
		}})
	})
}

func TestBatchQuadsEmpty(t *testing.T) {
	vertices, indices, groups := batchQuads(nil)
	assert.Empty(t, vertices)
	assert.Empty(t, indices)
	assert.Empty(t, groups)
}
