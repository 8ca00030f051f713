package geom

import (
	"structs"

	"github.com/chewxy/math32"
)

// Transform3 is a 4x4 column-major float32 matrix. The memory layout matches
// what WGSL expects for a mat4x4<f32> uniform, so a Transform3 can be
// uploaded as-is.
type Transform3 struct {
	_ structs.HostLayout

	// Cols[c][r] is column c, row r.
	Cols [4][4]float32
}

// Identity returns the identity transform.
func Identity() Transform3 {
	return Transform3{Cols: [4][4]float32{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}}
}

// Ortho2D returns a projection that maps the pixel rectangle
// (0,0)..(width,height) onto normalized device coordinates, with (0,0) at
// the top left and y pointing down on screen.
func Ortho2D(width, height float32) Transform3 {
	t := Identity()
	t.Cols[0][0] = 2 / width
	t.Cols[1][1] = -2 / height
	t.Cols[3][0] = -1
	t.Cols[3][1] = 1
	return t
}

// Mul returns t * other, applying other first.
func (t Transform3) Mul(other Transform3) Transform3 {
	var out Transform3
	for c := range 4 {
		for r := range 4 {
			var sum float32
			for k := range 4 {
				sum += t.Cols[k][r] * other.Cols[c][k]
			}
			out.Cols[c][r] = sum
		}
	}
	return out
}

// Translate returns t translated by (x, y, z).
func (t Transform3) Translate(x, y, z float32) Transform3 {
	m := Identity()
	m.Cols[3][0] = x
	m.Cols[3][1] = y
	m.Cols[3][2] = z
	return t.Mul(m)
}

// Scale returns t scaled by (x, y, z).
func (t Transform3) Scale(x, y, z float32) Transform3 {
	m := Identity()
	m.Cols[0][0] = x
	m.Cols[1][1] = y
	m.Cols[2][2] = z
	return t.Mul(m)
}

// RotateZ returns t rotated by angle radians around the z axis.
func (t Transform3) RotateZ(angle float32) Transform3 {
	sin, cos := math32.Sincos(angle)
	m := Identity()
	m.Cols[0][0] = cos
	m.Cols[0][1] = sin
	m.Cols[1][0] = -sin
	m.Cols[1][1] = cos
	return t.Mul(m)
}

// Apply transforms the point (x, y, z), returning the transformed
// coordinates without perspective division.
func (t Transform3) Apply(x, y, z float32) (float32, float32, float32) {
	ox := t.Cols[0][0]*x + t.Cols[1][0]*y + t.Cols[2][0]*z + t.Cols[3][0]
	oy := t.Cols[0][1]*x + t.Cols[1][1]*y + t.Cols[2][1]*z + t.Cols[3][1]
	oz := t.Cols[0][2]*x + t.Cols[1][2]*y + t.Cols[2][2]*z + t.Cols[3][2]
	return ox, oy, oz
}
