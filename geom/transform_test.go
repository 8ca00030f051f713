package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentityApply(t *testing.T) {
	id := Identity()
	x, y, z := id.Apply(3, -7, 0.5)
	assert.Equal(t, float32(3), x)
	assert.Equal(t, float32(-7), y)
	assert.Equal(t, float32(0.5), z)
}

func TestOrtho2D(t *testing.T) {
	proj := Ortho2D(800, 600)

	x, y, _ := proj.Apply(0, 0, 0)
	assert.Equal(t, float32(-1), x)
	assert.Equal(t, float32(1), y)

	x, y, _ = proj.Apply(800, 600, 0)
	assert.Equal(t, float32(1), x)
	assert.Equal(t, float32(-1), y)

	x, y, _ = proj.Apply(400, 300, 0)
	assert.Equal(t, float32(0), x)
	assert.Equal(t, float32(0), y)
}

func TestMulAppliesRightFirst(t *testing.T) {
	// Scale then translate is not translate then scale.
	st := Identity().Translate(10, 0, 0).Mul(Identity().Scale(2, 2, 2))
	x, _, _ := st.Apply(1, 0, 0)
	assert.Equal(t, float32(12), x)

	ts := Identity().Scale(2, 2, 2).Mul(Identity().Translate(10, 0, 0))
	x, _, _ = ts.Apply(1, 0, 0)
	assert.Equal(t, float32(22), x)
}

func TestMulIdentity(t *testing.T) {
	m := Identity().Translate(3, 4, 5).RotateZ(1.2)
	assert.Equal(t, m, m.Mul(Identity()))
	assert.Equal(t, m, Identity().Mul(m))
}

func TestRotateZ(t *testing.T) {
	quarter := Identity().RotateZ(math.Pi / 2)
	x, y, _ := quarter.Apply(1, 0, 0)
	assert.InDelta(t, 0, x, 1e-6)
	assert.InDelta(t, 1, y, 1e-6)
}

func TestRectCanon(t *testing.T) {
	r := Rt[float32](10, 10, -4, -6).Canon()
	assert.Equal(t, Rt[float32](6, 4, 4, 6), r)
	assert.Equal(t, float32(24), r.Area())
}
