package cells

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gocells/utils"
)

type IntersectionKind uint8

const (
	NoIntersection IntersectionKind = iota
	Intersecting
	Collinear
)

func (k IntersectionKind) String() string {
	switch k {
	case NoIntersection:
		return "NoIntersection"
	case Intersecting:
		return "Intersecting"
	case Collinear:
		return "Collinear"
	}
	return "Invalid"
}

// PointDistance is the closest approach of a point to a segment. T is the
// parameter of the projection on the supporting line, it is not clamped.
type PointDistance struct {
	Dist2   float64
	T       float64
	Closest r3.Vec
}

// SegmentDistance is the closest approach of two lines or segments
type SegmentDistance struct {
	Dist2              float64
	T1, T2             float64
	Closest1, Closest2 r3.Vec
}

// IntersectSegments finds the closest approach of the lines supporting a1-a2
// and b1-b2 from the normal equations. u and v are the parameters along each
// segment. Parallel lines are reported Collinear, with (u,v) taken from the
// endpoint nearest the other segment.
func IntersectSegments(a1, a2, b1, b2 r3.Vec) (kind IntersectionKind, u, v float64) {
	var (
		a21  = r3.Sub(a2, a1)
		b21  = r3.Sub(b2, b1)
		b1a1 = r3.Sub(b1, a1)
		r01  = -r3.Dot(a21, b21)
		ok   bool
	)
	u, v, ok = utils.Solve2x2(
		r3.Dot(a21, a21), r01,
		r01, r3.Dot(b21, b21),
		r3.Dot(a21, b1a1), -r3.Dot(b21, b1a1))
	if !ok {
		u, v = 0, 0
		var (
			minDist = utils.DOUBLEMAX
			p       = [4]r3.Vec{a1, a2, b1, b2}
			l1      = [4]r3.Vec{b1, b1, a1, a1}
			l2      = [4]r3.Vec{b2, b2, a2, a2}
		)
		for i := 0; i < 4; i++ {
			pd := DistancePointToSegment(p[i], l1[i], l2[i])
			if pd.Dist2 < minDist {
				minDist = pd.Dist2
				// The endpoint's own parameter is 0 or 1
				if i < 2 {
					v, u = pd.T, float64(i%2)
				} else {
					u, v = pd.T, float64(i%2)
				}
			}
		}
		kind = Collinear
		return
	}
	if u >= 0 && u <= 1 && v >= 0 && v <= 1 {
		kind = Intersecting
	}
	return
}

// IntersectSegments3D rejects a projected intersection of skew segments when
// the separation at (u,v) is larger than 1e-6 of the longer squared length.
func IntersectSegments3D(a1, a2, b1, b2 r3.Vec) (kind IntersectionKind, u, v float64) {
	kind, u, v = IntersectSegments(a1, a2, b1, b2)
	if kind != Intersecting {
		return
	}
	var (
		lenA = r3.Norm2(r3.Sub(a2, a1))
		lenB = r3.Norm2(r3.Sub(b2, b1))
		dist = utils.Distance2(utils.Lerp(a1, a2, u), utils.Lerp(b1, b2, v))
	)
	if dist > utils.INTERSECT3DTOL*math.Max(lenA, lenB) {
		kind = NoIntersection
	}
	return
}

// DistancePointToSegment projects x on the line a-b. The closest point is
// clamped to the segment. When the segment is degenerate relative to the
// projection the closest endpoint is chosen by the sign of the projection and
// T is set to utils.DOUBLEMAX or utils.DOUBLEMIN.
func DistancePointToSegment(x, a, b r3.Vec) (pd PointDistance) {
	var (
		ab  = r3.Sub(b, a)
		num = r3.Dot(ab, r3.Sub(x, a))
	)
	switch {
	case num == 0:
		pd.T, pd.Closest = 0, a
	default:
		denom := r3.Dot(ab, ab)
		if denom < math.Abs(utils.TOL*num) {
			if num > 0 {
				pd.T, pd.Closest = utils.DOUBLEMAX, b
			} else {
				pd.T, pd.Closest = utils.DOUBLEMIN, a
			}
			break
		}
		pd.T = num / denom
		switch {
		case pd.T < 0:
			pd.Closest = a
		case pd.T > 1:
			pd.Closest = b
		default:
			pd.Closest = r3.Add(a, r3.Scale(pd.T, ab))
		}
	}
	pd.Dist2 = utils.Distance2(pd.Closest, x)
	return
}

// DistanceToInfiniteLine returns the squared distance from x to the line
// through a and b, or to a if the line has zero length.
func DistanceToInfiniteLine(x, a, b r3.Vec) float64 {
	var (
		xa  = r3.Sub(x, a)
		dir = r3.Sub(a, b)
		den = r3.Norm(dir)
	)
	if den == 0 {
		return r3.Dot(xa, xa)
	}
	proj := r3.Dot(xa, r3.Scale(1/den, dir))
	return r3.Dot(xa, xa) - proj*proj
}

type closestApproach struct {
	u, v             r3.Vec
	a, b, c, d, e, D float64
}

func newClosestApproach(l0, l1, m0, m1 r3.Vec) (ca closestApproach) {
	ca.u = r3.Sub(l1, l0)
	ca.v = r3.Sub(m1, m0)
	w := r3.Sub(l0, m0)
	ca.a = r3.Dot(ca.u, ca.u)
	ca.b = r3.Dot(ca.u, ca.v)
	ca.c = r3.Dot(ca.v, ca.v)
	ca.d = r3.Dot(ca.u, w)
	ca.e = r3.Dot(ca.v, w)
	ca.D = ca.a*ca.c - ca.b*ca.b
	return
}

func (ca closestApproach) finish(l0, m0 r3.Vec, t1, t2 float64) (sd SegmentDistance) {
	sd.T1, sd.T2 = t1, t2
	sd.Closest1 = r3.Add(l0, r3.Scale(t1, ca.u))
	sd.Closest2 = r3.Add(m0, r3.Scale(t2, ca.v))
	sd.Dist2 = utils.Distance2(sd.Closest1, sd.Closest2)
	return
}

// DistanceBetweenLines is the closest approach of the infinite lines through
// l0-l1 and m0-m1. For near parallel lines T1 is 0.
func DistanceBetweenLines(l0, l1, m0, m1 r3.Vec) SegmentDistance {
	var (
		ca     = newClosestApproach(l0, l1, m0, m1)
		t1, t2 float64
	)
	if ca.D < utils.PARALLELTOL {
		if ca.b > ca.c {
			t2 = ca.d / ca.b
		} else {
			t2 = ca.e / ca.c
		}
	} else {
		t1 = (ca.b*ca.e - ca.c*ca.d) / ca.D
		t2 = (ca.a*ca.e - ca.b*ca.d) / ca.D
	}
	return ca.finish(l0, m0, t1, t2)
}

// DistanceBetweenSegments is the closest approach of segments l0-l1 and
// m0-m1. Both parameters are in [0,1].
func DistanceBetweenSegments(l0, l1, m0, m1 r3.Vec) (sd SegmentDistance) {
	ca := newClosestApproach(l0, l1, m0, m1)
	if ca.D < utils.PARALLELTOL {
		// One of the four endpoints is a closest point
		var (
			p  = [4]r3.Vec{l0, l1, m0, m1}
			a1 = [4]r3.Vec{m0, m0, l0, l0}
			a2 = [4]r3.Vec{m1, m1, l1, l1}
		)
		sd.Dist2 = utils.DOUBLEMAX
		for i := 0; i < 4; i++ {
			pd := DistancePointToSegment(p[i], a1[i], a2[i])
			if pd.Dist2 < sd.Dist2 {
				sd.Dist2 = pd.Dist2
				t := utils.Clamp(pd.T, 0, 1)
				if i < 2 {
					sd.T2, sd.T1 = t, float64(i%2)
					sd.Closest2, sd.Closest1 = pd.Closest, p[i]
				} else {
					sd.T1, sd.T2 = t, float64(i%2)
					sd.Closest1, sd.Closest2 = pd.Closest, p[i]
				}
			}
		}
		return
	}
	var (
		sN, sD = ca.b*ca.e - ca.c*ca.d, ca.D
		tN, tD = ca.a*ca.e - ca.b*ca.d, ca.D
	)
	// Clamp s to the segment, then t, then s again against the t edge
	if sN < 0 {
		sN, tN, tD = 0, ca.e, ca.c
	} else if sN > sD {
		sN, tN, tD = sD, ca.e+ca.b, ca.c
	}
	if tN < 0 {
		tN = 0
		switch {
		case -ca.d < 0:
			sN = 0
		case -ca.d > ca.a:
			sN = sD
		default:
			sN, sD = -ca.d, ca.a
		}
	} else if tN > tD {
		tN = tD
		switch {
		case -ca.d+ca.b < 0:
			sN = 0
		case -ca.d+ca.b > ca.a:
			sN = sD
		default:
			sN, sD = -ca.d+ca.b, ca.a
		}
	}
	var t1, t2 float64
	if math.Abs(sN) >= utils.PARALLELTOL {
		t1 = sN / sD
	}
	if math.Abs(tN) >= utils.PARALLELTOL {
		t2 = tN / tD
	}
	return ca.finish(l0, m0, t1, t2)
}
