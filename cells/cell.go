// Package cells implements per cell numerical operations: parametric
// evaluation, interpolation, line intersection, contouring, clipping and
// derivatives. Cells carry a copy of their point coordinates and ids and own
// no mesh storage; every operation is safe to call concurrently on distinct
// cells sharing one Output.
package cells

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gocells/fields"
	"github.com/notargets/gocells/types"
)

// PointLocator registers synthesized points. InsertUniquePoint returns the id
// of a point coincident with x, inserting x first if none exists. It must be
// atomic with respect to concurrent callers.
type PointLocator interface {
	InsertUniquePoint(x r3.Vec) (id int, isNew bool)
}

// CellSink receives output cells and returns the new cell id
type CellSink interface {
	InsertNextCell(ptIDs ...int) (cellID int)
}

// Output bundles the collaborators used by Contour and Clip. Nil field data
// skips attribute interpolation and copy.
type Output struct {
	Locator PointLocator
	Verts   CellSink
	Lines   CellSink
	Polys   CellSink
	InPD    *fields.FieldData
	OutPD   *fields.FieldData
	InCD    *fields.FieldData
	OutCD   *fields.FieldData
}

func (out *Output) interpolateEdge(toID, p1, p2 int, t float64) {
	if out.OutPD != nil && out.InPD != nil {
		out.OutPD.InterpolateEdge(out.InPD, toID, p1, p2, t)
	}
}

func (out *Output) copyPointData(fromID, toID int) {
	if out.OutPD != nil && out.InPD != nil {
		out.OutPD.CopyData(out.InPD, fromID, toID)
	}
}

func (out *Output) copyCellData(fromID, toID int) {
	if out.OutCD != nil && out.InCD != nil {
		out.OutCD.CopyData(out.InCD, fromID, toID)
	}
}

// Evaluation is the result of projecting a world point onto a cell
type Evaluation struct {
	Closest r3.Vec
	PCoords r3.Vec
	Dist2   float64
	// Weights follow the cell's point order
	Weights []float64
	Inside  bool
}

// LineHit is the result of intersecting a cell with the line p1-p2. T is the
// parameter along p1-p2.
type LineHit struct {
	Hit     bool
	T       float64
	X       r3.Vec
	PCoords r3.Vec
}

type Cell interface {
	Type() types.CellType
	Dimension() int
	NumberOfPoints() int
	PointIDs() []int
	Evaluate(x r3.Vec) Evaluation
	Interpolate(pcoords r3.Vec) (x r3.Vec, weights []float64)
	InterpolationFunctions(pcoords r3.Vec) (weights []float64)
	// InterpolationDerivs is ordered by parametric direction, then point
	InterpolationDerivs(pcoords r3.Vec) (derivs []float64)
	ParametricCoords() []r3.Vec
	ParametricCenter() r3.Vec
	// CellBoundary returns the boundary cell closest to pcoords and whether
	// pcoords lies inside the cell
	CellBoundary(pcoords r3.Vec) (ptIDs []int, inside bool)
	IntersectWithLine(p1, p2 r3.Vec, tol float64) LineHit
	// Triangulate decomposes the cell into simplices of its own dimension,
	// returned as consecutive point ids and their coordinates
	Triangulate() (ptIDs []int, x []r3.Vec)
	Contour(value float64, cellScalars []float64, cellID int, out *Output)
	Clip(value float64, cellScalars []float64, cellID int, insideOut bool, out *Output)
	// Derivatives returns a dim x 3 matrix of world axis derivatives of the
	// point values, values ordered by point then component
	Derivatives(values []float64, dim int) *mat.Dense
}

// New builds the cell of the given type from its point ids and coordinates,
// nil for types without an implementation.
func New(ct types.CellType, ptIDs []int, x []r3.Vec) Cell {
	switch ct {
	case types.Vertex:
		return NewVertex(ptIDs[0], x[0])
	case types.Line:
		return NewLine([2]int{ptIDs[0], ptIDs[1]}, [2]r3.Vec{x[0], x[1]})
	}
	return nil
}
