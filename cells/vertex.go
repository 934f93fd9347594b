package cells

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gocells/casetable"
	"github.com/notargets/gocells/types"
	"github.com/notargets/gocells/utils"
)

// Vertex is the single point cell
type Vertex struct {
	ID int
	X  r3.Vec
}

func NewVertex(id int, x r3.Vec) *Vertex {
	return &Vertex{ID: id, X: x}
}

func (v *Vertex) Type() types.CellType { return types.Vertex }

func (v *Vertex) Dimension() int { return 0 }

func (v *Vertex) NumberOfPoints() int { return 1 }

func (v *Vertex) PointIDs() []int { return []int{v.ID} }

// Evaluate is inside only when x coincides with the point
func (v *Vertex) Evaluate(x r3.Vec) (ev Evaluation) {
	ev.Closest = v.X
	ev.Dist2 = utils.Distance2(x, v.X)
	ev.Weights = []float64{1}
	ev.Inside = ev.Dist2 == 0
	return
}

func (v *Vertex) Interpolate(r3.Vec) (x r3.Vec, weights []float64) {
	return v.X, []float64{1}
}

func (v *Vertex) InterpolationFunctions(r3.Vec) []float64 { return []float64{1} }

func (v *Vertex) InterpolationDerivs(r3.Vec) []float64 { return nil }

func (v *Vertex) ParametricCoords() []r3.Vec { return []r3.Vec{{}} }

func (v *Vertex) ParametricCenter() r3.Vec { return r3.Vec{} }

func (v *Vertex) CellBoundary(pcoords r3.Vec) (ptIDs []int, inside bool) {
	return []int{v.ID}, pcoords.X == 0
}

// IntersectWithLine hits when the projection of the point on p1-p2 lies on
// the segment and within tol of the point.
func (v *Vertex) IntersectWithLine(p1, p2 r3.Vec, tol float64) (hit LineHit) {
	var (
		p21   = r3.Sub(p2, p1)
		denom = r3.Dot(p21, p21)
	)
	if denom != 0 {
		hit.T = r3.Dot(p21, r3.Sub(v.X, p1)) / denom
	}
	if hit.T >= 0 && hit.T <= 1 {
		hit.X = utils.Lerp(p1, p2, hit.T)
		if utils.Distance2(hit.X, v.X) <= tol*tol {
			hit.Hit = true
			return
		}
	}
	hit.PCoords.X = -1
	return
}

func (v *Vertex) Triangulate() (ptIDs []int, x []r3.Vec) {
	return []int{v.ID}, []r3.Vec{v.X}
}

// Contour emits the vertex itself when its scalar equals value
func (v *Vertex) Contour(value float64, cellScalars []float64, cellID int, out *Output) {
	if cellScalars[0] != value {
		return
	}
	v.emit(cellID, out)
}

func (v *Vertex) Clip(value float64, cellScalars []float64, cellID int, insideOut bool, out *Output) {
	if casetable.VertexClip[casetable.ClipIndex(cellScalars[:1], value, insideOut)].Empty() {
		return
	}
	v.emit(cellID, out)
}

func (v *Vertex) emit(cellID int, out *Output) {
	id, isNew := out.Locator.InsertUniquePoint(v.X)
	if isNew {
		out.copyPointData(v.ID, id)
	}
	newCellID := out.Verts.InsertNextCell(id)
	out.copyCellData(cellID, newCellID)
}

// Derivatives of a point are zero
func (v *Vertex) Derivatives(_ []float64, dim int) *mat.Dense {
	return mat.NewDense(dim, 3, nil)
}
