package types

import (
	"fmt"
	"math"
)

/*
EdgeKey packs the two point ids of an undirected edge into one comparable
value. The edge between points [4] and [0] is always stored as [0,4].
*/
type EdgeKey uint64

func NewEdgeKey(verts [2]int) (packed EdgeKey) {
	var (
		limit = math.MaxUint32
	)
	for _, vert := range verts {
		if vert < 0 || vert > limit {
			panic(fmt.Errorf("unable to pack point ids %d and %d into an edge key",
				verts[0], verts[1]))
		}
	}
	i1, i2 := verts[0], verts[1]
	if i1 > i2 {
		i1, i2 = i2, i1
	}
	packed = EdgeKey(uint64(i1) | uint64(i2)<<32)
	return
}

// GetVertices returns the point ids in ascending order, or descending with rev
func (ek EdgeKey) GetVertices(rev bool) (verts [2]int) {
	verts[0] = int(ek & math.MaxUint32)
	verts[1] = int(ek >> 32)
	if rev {
		verts[0], verts[1] = verts[1], verts[0]
	}
	return
}

// Less orders keys by their lower point id, then the higher
func (ek EdgeKey) Less(other EdgeKey) bool {
	a, b := ek.GetVertices(false), other.GetVertices(false)
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	return a[1] < b[1]
}
