package cells

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gocells/casetable"
	"github.com/notargets/gocells/types"
	"github.com/notargets/gocells/utils"
)

// Line is the two point linear cell. Parametric coordinate X is 0 at the
// first point and 1 at the second.
type Line struct {
	IDs [2]int
	X   [2]r3.Vec
}

func NewLine(ids [2]int, x [2]r3.Vec) *Line {
	return &Line{IDs: ids, X: x}
}

func (l *Line) Type() types.CellType { return types.Line }

func (l *Line) Dimension() int { return 1 }

func (l *Line) NumberOfPoints() int { return 2 }

func (l *Line) PointIDs() []int { return l.IDs[:] }

func (l *Line) Evaluate(x r3.Vec) (ev Evaluation) {
	pd := DistancePointToSegment(x, l.X[0], l.X[1])
	ev.Closest = pd.Closest
	ev.Dist2 = pd.Dist2
	ev.PCoords = r3.Vec{X: pd.T}
	ev.Weights = l.InterpolationFunctions(ev.PCoords)
	ev.Inside = pd.T >= 0 && pd.T <= 1
	return
}

func (l *Line) Interpolate(pcoords r3.Vec) (x r3.Vec, weights []float64) {
	x = utils.Lerp(l.X[0], l.X[1], pcoords.X)
	weights = l.InterpolationFunctions(pcoords)
	return
}

func (l *Line) InterpolationFunctions(pcoords r3.Vec) []float64 {
	return []float64{1 - pcoords.X, pcoords.X}
}

func (l *Line) InterpolationDerivs(r3.Vec) []float64 {
	return []float64{-1, 1}
}

func (l *Line) ParametricCoords() []r3.Vec {
	return []r3.Vec{{X: 0}, {X: 1}}
}

func (l *Line) ParametricCenter() r3.Vec { return r3.Vec{X: 0.5} }

// CellBoundary returns the endpoint nearest pcoords
func (l *Line) CellBoundary(pcoords r3.Vec) (ptIDs []int, inside bool) {
	if pcoords.X >= 0.5 {
		return []int{l.IDs[1]}, pcoords.X <= 1
	}
	return []int{l.IDs[0]}, pcoords.X >= 0
}

// IntersectWithLine intersects the line p1-p2 with the cell. When the
// supporting lines cross outside either segment the hit is tested against the
// nearest endpoint within tol.
func (l *Line) IntersectWithLine(p1, p2 r3.Vec, tol float64) (hit LineHit) {
	var (
		a1, a2 = l.X[0], l.X[1]
		tol2   = tol * tol
	)
	kind, t, pc := IntersectSegments(p1, p2, a1, a2)
	hit.T = t
	hit.PCoords = r3.Vec{X: pc}
	if kind == Intersecting {
		hit.X = utils.Lerp(a1, a2, pc)
		hit.Hit = utils.Distance2(hit.X, utils.Lerp(p1, p2, t)) <= tol2
		return
	}
	var pd PointDistance
	switch {
	case t < 0:
		hit.T = 0
		pd = DistancePointToSegment(p1, a1, a2)
		hit.PCoords.X, hit.X = pd.T, pd.Closest
	case t > 1:
		hit.T = 1
		pd = DistancePointToSegment(p2, a1, a2)
		hit.PCoords.X, hit.X = pd.T, pd.Closest
	case pc < 0:
		hit.PCoords.X = 0
		pd = DistancePointToSegment(a1, p1, p2)
		hit.T, hit.X = pd.T, pd.Closest
	case pc > 1:
		hit.PCoords.X = 1
		pd = DistancePointToSegment(a2, p1, p2)
		hit.T, hit.X = pd.T, pd.Closest
	default:
		return
	}
	hit.Hit = pd.Dist2 <= tol2
	return
}

func (l *Line) Triangulate() (ptIDs []int, x []r3.Vec) {
	return []int{l.IDs[0], l.IDs[1]}, []r3.Vec{l.X[0], l.X[1]}
}

// Contour emits at most one vertex where the scalar crosses value
func (l *Line) Contour(value float64, cellScalars []float64, cellID int, out *Output) {
	ec := casetable.LineContour[casetable.ContourIndex(cellScalars[:2], value)]
	if ec.Empty() {
		return
	}
	var (
		v0, v1 = ec.Verts[0], ec.Verts[1]
		t      = (value - cellScalars[v0]) / (cellScalars[v1] - cellScalars[v0])
		x      = utils.Lerp(l.X[v0], l.X[v1], t)
	)
	id, isNew := out.Locator.InsertUniquePoint(x)
	if isNew {
		out.interpolateEdge(id, l.IDs[v0], l.IDs[v1], t)
	}
	newCellID := out.Verts.InsertNextCell(id)
	out.copyCellData(cellID, newCellID)
}

// Clip keeps the part of the line where the scalar is above value, or at or
// below value when insideOut.
func (l *Line) Clip(value float64, cellScalars []float64, cellID int, insideOut bool, out *Output) {
	cc := casetable.LineClip[casetable.ClipIndex(cellScalars[:2], value, insideOut)]
	if cc.Empty() {
		return
	}
	var pts [2]int
	for i, cv := range cc.Verts {
		var isNew bool
		if cv.Existing {
			pts[i], isNew = out.Locator.InsertUniquePoint(l.X[cv.Vertex])
			if isNew {
				out.copyPointData(l.IDs[cv.Vertex], pts[i])
			}
			continue
		}
		t := (value - cellScalars[0]) / (cellScalars[1] - cellScalars[0])
		pts[i], isNew = out.Locator.InsertUniquePoint(utils.Lerp(l.X[0], l.X[1], t))
		if isNew {
			out.interpolateEdge(pts[i], l.IDs[0], l.IDs[1], t)
		}
	}
	if pts[0] == pts[1] {
		return
	}
	newCellID := out.Lines.InsertNextCell(pts[0], pts[1])
	out.copyCellData(cellID, newCellID)
}

func (l *Line) Derivatives(values []float64, dim int) (derivs *mat.Dense) {
	delta := r3.Sub(l.X[1], l.X[0])
	derivs = mat.NewDense(dim, 3, nil)
	for i := 0; i < dim; i++ {
		for j := 0; j < 3; j++ {
			if dx := utils.Component(delta, j); dx != 0 {
				derivs.Set(i, j, (values[i+dim]-values[i])/dx)
			}
		}
	}
	return
}
