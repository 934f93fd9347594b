// Package links indexes, for every point of a mesh, the cells that use it.
package links

import (
	"math"

	"github.com/james-bowman/sparse"
)

// Type tags the id width of a CellLinks implementation
type Type uint8

const (
	LinksNotDefined Type = iota
	StaticUint16
	StaticUint32
	StaticInt64
)

func (t Type) String() string {
	switch t {
	case StaticUint16:
		return "StaticUint16"
	case StaticUint32:
		return "StaticUint32"
	case StaticInt64:
		return "StaticInt64"
	}
	return "LinksNotDefined"
}

// Connectivity is the cell to point relation the links are built from
type Connectivity interface {
	NumberOfPoints() int
	NumberOfCells() int
	CellPointIDs(cellID int) []int
	ConnectivityLength() int
}

type CellLinks interface {
	// Build replaces the links with those of conn. A point repeated within
	// one cell links to the cell once. Cells are listed in id order.
	Build(conn Connectivity)
	// Initialize releases all storage
	Initialize()
	// Reset empties the links and keeps storage for the next Build
	Reset()
	// Squeeze releases storage beyond what the current links use
	Squeeze()
	// MemoryFootprint is the reserved storage in KiB, rounded up
	MemoryFootprint() int
	NumberOfPoints() int
	NumberOfCells(ptID int) int
	AppendCells(dst []int, ptID int) []int
	Type() Type
	SetSequentialProcessing(sequential bool)
	SequentialProcessing() bool
	DeepCopy() CellLinks
	// Incidence is the points by cells matrix with a one for each link
	Incidence() *sparse.CSR
}

// ComputeType picks the narrowest id width that can hold point ids, cell ids
// and offsets into a connectivity of length connLen.
func ComputeType(maxPtID, maxCellID, connLen int) Type {
	m := max(maxPtID, maxCellID, connLen)
	switch {
	case m < math.MaxUint16:
		return StaticUint16
	case uint64(m) < math.MaxUint32:
		return StaticUint32
	default:
		return StaticInt64
	}
}

// New returns empty links of the given width, nil for LinksNotDefined
func New(t Type) CellLinks {
	switch t {
	case StaticUint16:
		return NewStaticLinks[uint16]()
	case StaticUint32:
		return NewStaticLinks[uint32]()
	case StaticInt64:
		return NewStaticLinks[int64]()
	}
	return nil
}

// NewFor returns empty links wide enough for conn
func NewFor(conn Connectivity) CellLinks {
	return New(ComputeType(conn.NumberOfPoints()-1, conn.NumberOfCells()-1,
		conn.ConnectivityLength()))
}
