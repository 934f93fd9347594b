package mesh

import "sync"

// CellArray stores cell connectivity flattened. The points of cell c are
// Connectivity[Offsets[c]:Offsets[c+1]].
type CellArray struct {
	mu           sync.Mutex
	Offsets      []int
	Connectivity []int
}

func NewCellArray() *CellArray {
	return &CellArray{Offsets: []int{0}}
}

// InsertNextCell appends a cell and returns its id, safe for concurrent use
func (ca *CellArray) InsertNextCell(ptIDs ...int) (cellID int) {
	ca.mu.Lock()
	defer ca.mu.Unlock()
	cellID = len(ca.Offsets) - 1
	ca.Connectivity = append(ca.Connectivity, ptIDs...)
	ca.Offsets = append(ca.Offsets, len(ca.Connectivity))
	return
}

func (ca *CellArray) NumberOfCells() int { return len(ca.Offsets) - 1 }

func (ca *CellArray) CellPointIDs(cellID int) []int {
	return ca.Connectivity[ca.Offsets[cellID]:ca.Offsets[cellID+1]]
}

func (ca *CellArray) ConnectivityLength() int { return len(ca.Connectivity) }

// MaxCellSize is the largest number of points in one cell
func (ca *CellArray) MaxCellSize() (n int) {
	for c := 0; c < ca.NumberOfCells(); c++ {
		n = max(n, ca.Offsets[c+1]-ca.Offsets[c])
	}
	return
}
