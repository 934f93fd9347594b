package cells

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gocells/types"
)

func testLine() *Line {
	return NewLine([2]int{4, 7}, [2]r3.Vec{{X: 1, Y: 2, Z: 3}, {X: 3, Y: 2, Z: -1}})
}

func TestLineEvaluate(t *testing.T) {
	l := testLine()
	assert.Equal(t, types.Line, l.Type())
	assert.Equal(t, 1, l.Dimension())
	assert.Equal(t, []int{4, 7}, l.PointIDs())

	for _, tt := range []float64{0, 0.1, 0.25, 1. / 3., 0.5, 0.9, 1} {
		x, w := l.Interpolate(r3.Vec{X: tt})
		assert.True(t, scalar.EqualWithinAbsOrRel(1., w[0]+w[1], 1.e-15, 1.e-15))
		ev := l.Evaluate(x)
		assert.True(t, ev.Inside)
		assert.InDelta(t, tt, ev.PCoords.X, 1.e-12)
		assert.InDelta(t, 0., ev.Dist2, 1.e-20)
		assert.InDelta(t, 1., ev.Weights[0]+ev.Weights[1], 1.e-15)
	}
	{ // Off the line and beyond the second point
		ev := l.Evaluate(r3.Vec{X: 5, Y: 4, Z: -5})
		assert.False(t, ev.Inside)
		assert.InDelta(t, 2., ev.PCoords.X, 1.e-12)
		assert.Equal(t, l.X[1], ev.Closest)
		assert.InDelta(t, 24., ev.Dist2, 1.e-12)
		assert.InDelta(t, -1., ev.Weights[0], 1.e-12)
	}
	// Extrapolation is well defined
	x, _ := l.Interpolate(r3.Vec{X: -1})
	assert.Equal(t, r3.Vec{X: -1, Y: 2, Z: 7}, x)

	assert.Equal(t, []float64{-1, 1}, l.InterpolationDerivs(r3.Vec{}))
	assert.Equal(t, r3.Vec{X: 0.5}, l.ParametricCenter())
	assert.Len(t, l.ParametricCoords(), 2)
}

func TestLineCellBoundary(t *testing.T) {
	l := testLine()
	ids, inside := l.CellBoundary(r3.Vec{X: 0.2})
	assert.Equal(t, []int{4}, ids)
	assert.True(t, inside)
	ids, inside = l.CellBoundary(r3.Vec{X: 1.2})
	assert.Equal(t, []int{7}, ids)
	assert.False(t, inside)
	ids, inside = l.CellBoundary(r3.Vec{X: -0.1})
	assert.Equal(t, []int{4}, ids)
	assert.False(t, inside)

	ids, x := l.Triangulate()
	assert.Equal(t, []int{4, 7}, ids)
	assert.Equal(t, l.X[:], x)
}

func TestLineIntersectWithLine(t *testing.T) {
	l := NewLine([2]int{0, 1}, [2]r3.Vec{{}, {X: 2}})
	{
		hit := l.IntersectWithLine(r3.Vec{X: 0.5, Y: -1}, r3.Vec{X: 0.5, Y: 1}, 1.e-6)
		assert.True(t, hit.Hit)
		assert.InDelta(t, 0.5, hit.T, 1.e-12)
		assert.InDelta(t, 0.25, hit.PCoords.X, 1.e-12)
		assert.InDelta(t, 0.5, hit.X.X, 1.e-12)
	}
	{ // Probe stops short of the cell
		hit := l.IntersectWithLine(r3.Vec{X: 0.5, Y: -2}, r3.Vec{X: 0.5, Y: -0.1}, 0.01)
		assert.False(t, hit.Hit)
		assert.Equal(t, 1., hit.T)
		hit = l.IntersectWithLine(r3.Vec{X: 0.5, Y: -2}, r3.Vec{X: 0.5, Y: -0.1}, 0.2)
		assert.True(t, hit.Hit)
		assert.InDelta(t, 0.25, hit.PCoords.X, 1.e-12)
	}
	{ // Probe passes beyond the end of the cell
		hit := l.IntersectWithLine(r3.Vec{X: 2.05, Y: -1}, r3.Vec{X: 2.05, Y: 1}, 0.1)
		assert.True(t, hit.Hit)
		assert.Equal(t, 1., hit.PCoords.X)
		assert.InDelta(t, 0.5, hit.T, 1.e-12)
	}
}

func TestLineContour(t *testing.T) {
	l := NewLine([2]int{0, 1}, [2]r3.Vec{{}, {X: 4}})
	{ // Crossing, point and cell data follow
		inPD := scalarData("s", 1, 3)
		inCD := scalarData("c", 7, 8, 9)
		out, verts, _ := newOutput(newExactLocator(), inPD, inCD)
		l.Contour(1.5, []float64{1, 3}, 2, out)
		require.Len(t, *verts, 1)
		loc := out.Locator.(*exactLocator)
		assert.Equal(t, []r3.Vec{{X: 1}}, loc.points)
		s, _ := out.OutPD.GetArray("s")
		assert.Equal(t, 1.5, s.GetComponent(0, 0))
		c, _ := out.OutCD.GetArray("c")
		assert.Equal(t, 9., c.GetComponent(0, 0))
	}
	{ // Decreasing samples interpolate from the low vertex
		out, _, _ := newOutput(newExactLocator(), nil, nil)
		l.Contour(1.5, []float64{3, 1}, 0, out)
		assert.Equal(t, []r3.Vec{{X: 3}}, out.Locator.(*exactLocator).points)
	}
	{ // Isovalue equal to an endpoint already emitted
		loc := newExactLocator(r3.Vec{X: 4})
		out, verts, _ := newOutput(loc, scalarData("s", 1, 3), nil)
		l.Contour(3, []float64{1, 3}, 0, out)
		require.Len(t, *verts, 1)
		assert.Equal(t, []int{0}, (*verts)[0])
		assert.Len(t, loc.points, 1)
		s, _ := out.OutPD.GetArray("s")
		assert.Equal(t, 0, s.NumberOfTuples())
	}
	{ // No crossing
		out, verts, _ := newOutput(newExactLocator(), nil, nil)
		l.Contour(5, []float64{1, 3}, 0, out)
		l.Contour(0, []float64{1, 3}, 0, out)
		assert.Empty(t, *verts)
	}
}

func TestLineClip(t *testing.T) {
	l := NewLine([2]int{0, 1}, [2]r3.Vec{{}, {X: 4}})
	{ // Both below
		out, _, lines := newOutput(newExactLocator(), nil, nil)
		l.Clip(5, []float64{1, 3}, 0, false, out)
		assert.Empty(t, *lines)
	}
	{ // Keep the upper part
		inPD := scalarData("s", 1, 3)
		out, _, lines := newOutput(newExactLocator(), inPD, scalarData("c", 11))
		l.Clip(2, []float64{1, 3}, 0, false, out)
		require.Len(t, *lines, 1)
		assert.Equal(t, []int{0, 1}, (*lines)[0])
		assert.Equal(t, []r3.Vec{{X: 2}, {X: 4}}, out.Locator.(*exactLocator).points)
		s, _ := out.OutPD.GetArray("s")
		assert.Equal(t, []float64{2, 3}, s.Data())
		c, _ := out.OutCD.GetArray("c")
		assert.Equal(t, 11., c.GetComponent(0, 0))
	}
	{ // insideOut keeps the lower part
		out, _, lines := newOutput(newExactLocator(), nil, nil)
		l.Clip(2, []float64{1, 3}, 0, true, out)
		require.Len(t, *lines, 1)
		assert.Equal(t, []r3.Vec{{}, {X: 2}}, out.Locator.(*exactLocator).points)
	}
	{ // Both kept
		out, _, lines := newOutput(newExactLocator(), nil, nil)
		l.Clip(0, []float64{1, 3}, 0, false, out)
		assert.Equal(t, cellList{{0, 1}}, *lines)
	}
	{ // Crossing coincident with the kept vertex is degenerate
		out, _, lines := newOutput(newExactLocator(), nil, nil)
		l.Clip(3, []float64{3, 5}, 0, true, out)
		assert.Empty(t, *lines)
	}
}

func TestLineDerivatives(t *testing.T) {
	l := NewLine([2]int{0, 1}, [2]r3.Vec{{X: 1, Y: 1, Z: 1}, {X: 3, Y: 1, Z: 0}})
	// two components per point
	d := l.Derivatives([]float64{1, 10, 5, 4}, 2)
	r, c := d.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, []float64{2, 0, -4}, d.RawRowView(0))
	assert.Equal(t, []float64{-3, 0, 6}, d.RawRowView(1))
}

func TestCellFactory(t *testing.T) {
	c := New(types.Line, []int{3, 4}, []r3.Vec{{}, {X: 1}})
	require.NotNil(t, c)
	assert.Equal(t, 2, c.NumberOfPoints())
	c = New(types.Vertex, []int{3}, []r3.Vec{{X: 1}})
	require.NotNil(t, c)
	assert.Equal(t, 0, c.Dimension())
	assert.Nil(t, New(types.Tet, nil, nil))
}
