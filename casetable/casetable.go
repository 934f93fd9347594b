// Package casetable classifies cell vertices against a scalar value and maps
// the resulting case index to the pieces a cell emits when contoured or
// clipped.
package casetable

import "github.com/notargets/gocells/utils"

// EdgeCase lists the two vertices of the cell edge crossed by the
// contour, from the vertex below the value to the vertex above it. A case with
// no crossing has both vertices set to -1.
type EdgeCase struct {
	Verts [2]int
}

func (ec EdgeCase) Empty() bool { return ec.Verts[0] < 0 }

// ClipVertex is one output vertex of a clip case. Existing vertices are the
// cell vertex verbatim, otherwise the vertex is the crossing on the cell edge.
type ClipVertex struct {
	Existing bool
	Vertex   int
}

type ClipCase struct {
	Verts []ClipVertex
}

func (cc ClipCase) Empty() bool { return len(cc.Verts) == 0 }

func Keep(vert int) ClipVertex { return ClipVertex{Existing: true, Vertex: vert} }

func Cross() ClipVertex { return ClipVertex{Vertex: -1} }

var (
	// LineContour is indexed by ContourIndex of the two line samples
	LineContour = [4]EdgeCase{
		{Verts: [2]int{-1, -1}},
		{Verts: [2]int{1, 0}},
		{Verts: [2]int{0, 1}},
		{Verts: [2]int{-1, -1}},
	}
	// LineClip is indexed by ClipIndex of the two line samples
	LineClip = [4]ClipCase{
		{},
		{Verts: []ClipVertex{Keep(0), Cross()}},
		{Verts: []ClipVertex{Cross(), Keep(1)}},
		{Verts: []ClipVertex{Keep(0), Keep(1)}},
	}
	VertexClip = [2]ClipCase{
		{},
		{Verts: []ClipVertex{Keep(0)}},
	}
)

// ContourIndex sets bit i when samples[i] >= value
func ContourIndex(samples []float64, value float64) (index int) {
	for i, s := range samples {
		if utils.GreaterOrEqual.Eval(s, value) {
			index |= 1 << i
		}
	}
	return
}

// ClipIndex sets bit i for each vertex that is kept: samples[i] > value, or
// samples[i] <= value when insideOut.
func ClipIndex(samples []float64, value float64, insideOut bool) (index int) {
	keep := utils.Greater
	if insideOut {
		keep = utils.LessOrEqual
	}
	for i, s := range samples {
		if keep.Eval(s, value) {
			index |= 1 << i
		}
	}
	return
}
