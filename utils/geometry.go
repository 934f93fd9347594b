package utils

import (
	"gonum.org/v1/gonum/spatial/r3"
)

func Dot(a, b r3.Vec) float64 { return r3.Dot(a, b) }

func Norm(a r3.Vec) float64 { return r3.Norm(a) }

// Distance2 is the squared euclidean distance between two points.
func Distance2(a, b r3.Vec) float64 {
	return r3.Norm2(r3.Sub(a, b))
}

// Lerp returns a + t*(b-a). The parameter is never range checked.
func Lerp(a, b r3.Vec, t float64) r3.Vec {
	return r3.Vec{
		X: a.X + t*(b.X-a.X),
		Y: a.Y + t*(b.Y-a.Y),
		Z: a.Z + t*(b.Z-a.Z),
	}
}

func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Component returns the i'th coordinate, 0=X, 1=Y, 2=Z
func Component(v r3.Vec, i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// Solve2x2 solves the system
//
//	| a00 a01 | |x0|   |b0|
//	| a10 a11 | |x1| = |b1|
//
// by Cramer's rule. ok is false when the system is singular relative to the
// row magnitudes: det^2 < 256*eps*|row0|^2*|row1|^2.
func Solve2x2(a00, a01, a10, a11, b0, b1 float64) (x0, x1 float64, ok bool) {
	const eps = 256 * 2.220446049250313e-16
	det := a00*a11 - a01*a10
	n0 := a00*a00 + a01*a01
	n1 := a10*a10 + a11*a11
	if det*det < eps*n0*n1 || det == 0 {
		return
	}
	x0 = (a11*b0 - a01*b1) / det
	x1 = (-a10*b0 + a00*b1) / det
	ok = true
	return
}
