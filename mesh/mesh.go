// Package mesh holds polygonal mesh data, builds point to cell links over it
// and runs the cell kernels across all cells of a mesh.
package mesh

import (
	"errors"
	"fmt"
	"sort"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gocells/cells"
	"github.com/notargets/gocells/fields"
	"github.com/notargets/gocells/links"
	"github.com/notargets/gocells/types"
)

var (
	ErrUnsupportedCell = errors.New("unsupported cell type")
	ErrMissingArray    = errors.New("missing point data array")
)

// Mesh is a point set and the cells built on it
type Mesh struct {
	// Geometry
	Points *types.Points

	// Topology
	Cells     *CellArray
	CellTypes []types.CellType

	// Attributes, tuple ids are point and cell ids
	PointData *fields.FieldData
	CellData  *fields.FieldData

	// Point to cell links, built on first query. Call BuildLinks after
	// editing cells.
	Links links.CellLinks
}

func NewMesh(points *types.Points) *Mesh {
	if points == nil {
		points = types.NewPoints(0)
	}
	return &Mesh{
		Points:    points,
		Cells:     NewCellArray(),
		PointData: fields.NewFieldData(),
		CellData:  fields.NewFieldData(),
	}
}

func (m *Mesh) InsertNextCell(ct types.CellType, ptIDs ...int) (cellID int) {
	cellID = m.Cells.InsertNextCell(ptIDs...)
	m.CellTypes = append(m.CellTypes, ct)
	return
}

func (m *Mesh) NumberOfPoints() int { return m.Points.NumberOfPoints() }

func (m *Mesh) NumberOfCells() int { return m.Cells.NumberOfCells() }

func (m *Mesh) CellPointIDs(cellID int) []int { return m.Cells.CellPointIDs(cellID) }

func (m *Mesh) ConnectivityLength() int { return m.Cells.ConnectivityLength() }

// GetCell returns the cell with a copy of its point coordinates
func (m *Mesh) GetCell(cellID int) (cells.Cell, error) {
	var (
		ct    = m.CellTypes[cellID]
		ptIDs = m.CellPointIDs(cellID)
	)
	if len(ptIDs) != ct.GetNumNodes() {
		return nil, fmt.Errorf("cell %d of type %s has %d points: %w",
			cellID, ct, len(ptIDs), ErrUnsupportedCell)
	}
	x := make([]r3.Vec, len(ptIDs))
	for i, pt := range ptIDs {
		x[i] = m.Points.GetPoint(pt)
	}
	c := cells.New(ct, ptIDs, x)
	if c == nil {
		return nil, fmt.Errorf("cell %d of type %s: %w", cellID, ct, ErrUnsupportedCell)
	}
	return c, nil
}

// BuildLinks builds the point to cell links with the narrowest id width
// that fits the mesh
func (m *Mesh) BuildLinks() {
	if m.Links == nil || m.Links.Type() != links.ComputeType(
		m.NumberOfPoints()-1, m.NumberOfCells()-1, m.ConnectivityLength()) {
		m.Links = links.NewFor(m)
	}
	m.Links.Build(m)
}

func (m *Mesh) links() links.CellLinks {
	if m.Links == nil || m.Links.NumberOfPoints() != m.NumberOfPoints() {
		m.BuildLinks()
	}
	return m.Links
}

// PointCells returns the cells using the point
func (m *Mesh) PointCells(ptID int) []int {
	return m.links().AppendCells(nil, ptID)
}

func (m *Mesh) pointCellSet(ptID int) *roaring64.Bitmap {
	bm := roaring64.New()
	for _, c := range m.PointCells(ptID) {
		bm.Add(uint64(c))
	}
	return bm
}

// CellNeighbors returns, in increasing order, the cells other than cellID
// that use all of ptIDs. With the points of an edge these are the cells
// sharing that edge.
func (m *Mesh) CellNeighbors(cellID int, ptIDs []int) (neighbors []int) {
	if len(ptIDs) == 0 {
		return
	}
	bm := m.pointCellSet(ptIDs[0])
	for _, pt := range ptIDs[1:] {
		bm.And(m.pointCellSet(pt))
	}
	bm.Remove(uint64(cellID))
	return toInts(bm)
}

// PointNeighbors returns, in increasing order, the points sharing a cell
// with ptID
func (m *Mesh) PointNeighbors(ptID int) []int {
	bm := roaring64.New()
	for _, c := range m.PointCells(ptID) {
		for _, pt := range m.CellPointIDs(c) {
			bm.Add(uint64(pt))
		}
	}
	bm.Remove(uint64(ptID))
	return toInts(bm)
}

func toInts(bm *roaring64.Bitmap) (ids []int) {
	ids = make([]int, 0, bm.GetCardinality())
	for _, v := range bm.ToArray() {
		ids = append(ids, int(v))
	}
	return
}

// PointAdjacency is the points by points matrix counting the cells shared by
// each pair of points. The diagonal counts the cells of each point.
func (m *Mesh) PointAdjacency() *sparse.CSR {
	var (
		inc = m.links().Incidence()
		adj sparse.CSR
	)
	adj.Mul(inc, m.cellIncidence())
	return &adj
}

// cellIncidence is the cells by points transpose of the links incidence
func (m *Mesh) cellIncidence() *sparse.CSR {
	var (
		nc     = m.NumberOfCells()
		indptr = make([]int, nc+1)
		ind    = make([]int, 0, m.ConnectivityLength())
	)
	for c := 0; c < nc; c++ {
		ids := m.CellPointIDs(c)
	next:
		for k, pt := range ids {
			for _, prev := range ids[:k] {
				if prev == pt {
					continue next
				}
			}
			ind = append(ind, pt)
		}
		indptr[c+1] = len(ind)
	}
	data := make([]float64, len(ind))
	for i := range data {
		data[i] = 1
	}
	return sparse.NewCSR(nc, m.NumberOfPoints(), indptr, ind, data)
}

// CellTypeCounts tallies the cells of each type
func (m *Mesh) CellTypeCounts() map[types.CellType]int {
	counts := make(map[types.CellType]int)
	for _, ct := range m.CellTypes {
		counts[ct]++
	}
	return counts
}

// Edges returns the unique edges of the 1D and 2D cells, ordered by their
// point ids. Polygon edges follow the point ring of each cell.
func (m *Mesh) Edges() (edges []types.EdgeKey) {
	seen := make(map[types.EdgeKey]struct{})
	add := func(a, b int) {
		if a == b {
			return
		}
		ek := types.NewEdgeKey([2]int{a, b})
		if _, ok := seen[ek]; !ok {
			seen[ek] = struct{}{}
			edges = append(edges, ek)
		}
	}
	for c, ct := range m.CellTypes {
		ids := m.CellPointIDs(c)
		switch ct.GetDimension() {
		case 1:
			for i := 1; i < len(ids); i++ {
				add(ids[i-1], ids[i])
			}
		case 2:
			for i := range ids {
				add(ids[i], ids[(i+1)%len(ids)])
			}
		}
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].Less(edges[j]) })
	return
}
