package types

// CellType tags the shape of a cell

type CellType int

const (
	EmptyCell CellType = iota
	// 0D cells
	Vertex
	// 1D cells
	Line
	// 2D cells
	Triangle
	Quad
	// 3D cells
	Tet
	Hex
	Prism
	Pyramid
)

func (c CellType) String() string {
	names := []string{
		"EmptyCell",
		"Vertex",
		"Line",
		"Triangle", "Quad",
		"Tet", "Hex", "Prism", "Pyramid",
	}
	if c >= 0 && int(c) < len(names) {
		return names[c]
	}
	return "Invalid"
}

// GetDimension returns the topological dimension of the cell
func (c CellType) GetDimension() int {
	switch c {
	case Vertex:
		return 0
	case Line:
		return 1
	case Triangle, Quad:
		return 2
	case Tet, Hex, Prism, Pyramid:
		return 3
	default:
		return -1
	}
}

// GetNumNodes returns the number of points of each cell type
func (c CellType) GetNumNodes() int {
	switch c {
	case Vertex:
		return 1
	case Line:
		return 2
	case Triangle:
		return 3
	case Quad:
		return 4
	case Tet:
		return 4
	case Hex:
		return 8
	case Prism:
		return 6
	case Pyramid:
		return 5
	default:
		return 0
	}
}

// CellTypeFromName maps lower case names used in input files
var CellTypeFromName = map[string]CellType{
	"vertex":   Vertex,
	"line":     Line,
	"triangle": Triangle,
	"quad":     Quad,
	"tet":      Tet,
	"hex":      Hex,
	"prism":    Prism,
	"pyramid":  Pyramid,
}
