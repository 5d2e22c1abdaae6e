package pcl

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Affine is a 4x4 homogeneous transform stored row-major, the layout of
// Eigen::Affine3f::matrix() read row by row.
type Affine [16]float32

// Identity returns the identity transform.
func Identity() Affine {
	return Affine{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
}

// Translation returns a pure translation.
func Translation(x, y, z float32) Affine {
	a := Identity()
	a[3], a[7], a[11] = x, y, z
	return a
}

// RotationX returns a rotation of angle radians about the x axis.
func RotationX(angle float64) Affine {
	s, c := sincos(angle)
	return Affine{1, 0, 0, 0, 0, c, -s, 0, 0, s, c, 0, 0, 0, 0, 1}
}

// RotationY returns a rotation of angle radians about the y axis.
func RotationY(angle float64) Affine {
	s, c := sincos(angle)
	return Affine{c, 0, s, 0, 0, 1, 0, 0, -s, 0, c, 0, 0, 0, 0, 1}
}

// RotationZ returns a rotation of angle radians about the z axis.
func RotationZ(angle float64) Affine {
	s, c := sincos(angle)
	return Affine{c, -s, 0, 0, s, c, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
}

func sincos(angle float64) (float32, float32) {
	s, c := math.Sincos(angle)
	return float32(s), float32(c)
}

// IsZero reports whether every entry is zero. A zero Affine passed as a
// sensor pose is read as Identity.
func (a Affine) IsZero() bool { return a == Affine{} }

// Mul returns a*b, applying b first.
func (a Affine) Mul(b Affine) Affine {
	var out mat.Dense
	out.Mul(a.dense(), b.dense())
	return affineFrom(&out)
}

// Inverse returns the inverse transform.
func (a Affine) Inverse() (Affine, error) {
	var inv mat.Dense
	if err := inv.Inverse(a.dense()); err != nil {
		return Affine{}, fmt.Errorf("pcl: invert transform: %w", err)
	}
	return affineFrom(&inv), nil
}

// Apply transforms the point (x, y, z).
func (a Affine) Apply(x, y, z float32) (float32, float32, float32) {
	return a[0]*x + a[1]*y + a[2]*z + a[3],
		a[4]*x + a[5]*y + a[6]*z + a[7],
		a[8]*x + a[9]*y + a[10]*z + a[11]
}

func (a Affine) dense() *mat.Dense {
	d := make([]float64, 16)
	for i, v := range a {
		d[i] = float64(v)
	}
	return mat.NewDense(4, 4, d)
}

func affineFrom(m mat.Matrix) Affine {
	var a Affine
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			a[r*4+c] = float32(m.At(r, c))
		}
	}
	return a
}
