// Package readfiles reads meshes stored in the SU2 native format.
package readfiles

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gocells/mesh"
	"github.com/notargets/gocells/types"
)

var ErrFormat = errors.New("malformed SU2 file")

// From here: https://su2code.github.io/docs_v7/Mesh-File/
type SU2ElementType uint8

const (
	ELType_Vertex        SU2ElementType = 1
	ELType_LINE          SU2ElementType = 3
	ELType_Triangle      SU2ElementType = 5
	ELType_Quadrilateral SU2ElementType = 9
	ELType_Tetrahedral   SU2ElementType = 10
	ELType_Hexahedral    SU2ElementType = 12
	ELType_Prism         SU2ElementType = 13
	ELType_Pyramid       SU2ElementType = 14
)

func (et SU2ElementType) CellType() (ct types.CellType, ok bool) {
	switch et {
	case ELType_Vertex:
		ct = types.Vertex
	case ELType_LINE:
		ct = types.Line
	case ELType_Triangle:
		ct = types.Triangle
	case ELType_Quadrilateral:
		ct = types.Quad
	case ELType_Tetrahedral:
		ct = types.Tet
	case ELType_Hexahedral:
		ct = types.Hex
	case ELType_Prism:
		ct = types.Prism
	case ELType_Pyramid:
		ct = types.Pyramid
	default:
		return types.EmptyCell, false
	}
	return ct, true
}

// Markers are the tagged boundary edges of a mesh, by tag
type Markers map[string][]types.EdgeKey

func ReadSU2File(fileName string, verbose bool) (m *mesh.Mesh, markers Markers, err error) {
	var file *os.File
	if verbose {
		fmt.Printf("Reading SU2 file named: %s\n", fileName)
	}
	if file, err = os.Open(fileName); err != nil {
		return
	}
	defer file.Close()
	if m, markers, err = ReadSU2(file); err != nil {
		err = fmt.Errorf("%s: %w", fileName, err)
		return
	}
	if verbose {
		fmt.Printf("Read %d points, %d cells and %d markers\n",
			m.NumberOfPoints(), m.NumberOfCells(), len(markers))
	}
	return
}

// ReadSU2 reads the NDIME, NELEM, NPOIN and optional NMARK sections in that
// order. Two dimensional points get Z = 0. Markers may only hold lines.
func ReadSU2(r io.Reader) (m *mesh.Mesh, markers Markers, err error) {
	var (
		rd                  = &su2Reader{sc: bufio.NewScanner(r)}
		ndime, nelem, npoin int
	)
	if ndime, err = rd.number("NDIME"); err != nil {
		return
	}
	if ndime != 2 && ndime != 3 {
		err = fmt.Errorf("line %d: NDIME= %d: %w", rd.line, ndime, ErrFormat)
		return
	}
	if nelem, err = rd.number("NELEM"); err != nil {
		return
	}
	var (
		cellTypes = make([]types.CellType, nelem)
		cellIDs   = make([][]int, nelem)
	)
	for k := 0; k < nelem; k++ {
		if cellTypes[k], cellIDs[k], err = rd.element(); err != nil {
			return
		}
	}
	if npoin, err = rd.number("NPOIN"); err != nil {
		return
	}
	points := types.NewPoints(npoin)
	for i := 0; i < npoin; i++ {
		var x r3.Vec
		if x, err = rd.point(ndime); err != nil {
			return
		}
		points.InsertNextPoint(x)
	}
	m = mesh.NewMesh(points)
	for k, ids := range cellIDs {
		for _, pt := range ids {
			if pt >= npoin {
				err = fmt.Errorf("element %d references point %d, have %d points: %w",
					k, pt, npoin, ErrFormat)
				return nil, nil, err
			}
		}
		m.InsertNextCell(cellTypes[k], ids...)
	}
	if markers, err = rd.markers(npoin); err != nil {
		return nil, nil, err
	}
	return
}

type su2Reader struct {
	sc   *bufio.Scanner
	line int
}

// next returns the next line that is neither blank nor a % comment
func (rd *su2Reader) next() (string, error) {
	for rd.sc.Scan() {
		rd.line++
		line := strings.TrimSpace(rd.sc.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		return line, nil
	}
	if err := rd.sc.Err(); err != nil {
		return "", err
	}
	return "", io.ErrUnexpectedEOF
}

func (rd *su2Reader) token(key string) (token string, err error) {
	var line string
	if line, err = rd.next(); err != nil {
		return "", fmt.Errorf("reading %s: %w", key, err)
	}
	ind := strings.Index(line, "=")
	if ind < 0 || strings.TrimSpace(line[:ind]) != key {
		return "", fmt.Errorf("line %d: expected %s= but have [%s]: %w", rd.line, key, line, ErrFormat)
	}
	token = strings.TrimSpace(line[ind+1:])
	return
}

func (rd *su2Reader) number(key string) (num int, err error) {
	var token string
	if token, err = rd.token(key); err != nil {
		return
	}
	if num, err = strconv.Atoi(token); err != nil || num < 0 {
		return 0, fmt.Errorf("line %d: unable to read %s from [%s]: %w", rd.line, key, token, ErrFormat)
	}
	return
}

// element reads "type id0 id1 ... [index]"
func (rd *su2Reader) element() (ct types.CellType, ids []int, err error) {
	var (
		line string
		nums []int
		ok   bool
	)
	if line, err = rd.next(); err != nil {
		return
	}
	if nums, err = parseInts(line); err != nil || len(nums) == 0 {
		err = fmt.Errorf("line %d: unable to read element from [%s]: %w", rd.line, line, ErrFormat)
		return
	}
	if nums[0] >= 0 && nums[0] <= 255 {
		ct, ok = SU2ElementType(nums[0]).CellType()
	}
	if !ok {
		err = fmt.Errorf("line %d: unknown element type %d: %w", rd.line, nums[0], ErrFormat)
		return
	}
	nn := ct.GetNumNodes()
	if len(nums) < 1+nn {
		err = fmt.Errorf("line %d: %s needs %d points, have [%s]: %w", rd.line, ct, nn, line, ErrFormat)
		return
	}
	ids = nums[1 : 1+nn]
	for _, pt := range ids {
		if pt < 0 {
			err = fmt.Errorf("line %d: negative point id: %w", rd.line, ErrFormat)
			return
		}
	}
	return
}

// point reads "x y [z] [index]"
func (rd *su2Reader) point(ndime int) (x r3.Vec, err error) {
	var line string
	if line, err = rd.next(); err != nil {
		return
	}
	fields := strings.Fields(line)
	if len(fields) < ndime {
		err = fmt.Errorf("line %d: need %d coordinates, have [%s]: %w", rd.line, ndime, line, ErrFormat)
		return
	}
	var c [3]float64
	for i := 0; i < ndime; i++ {
		if c[i], err = strconv.ParseFloat(fields[i], 64); err != nil {
			err = fmt.Errorf("line %d: %w: %w", rd.line, err, ErrFormat)
			return
		}
	}
	x = r3.Vec{X: c[0], Y: c[1], Z: c[2]}
	return
}

// markers reads the NMARK section, absent markers are not an error.
// Repeated tags append to the same edge list.
func (rd *su2Reader) markers(npoin int) (markers Markers, err error) {
	var nmark int
	markers = make(Markers)
	if nmark, err = rd.number("NMARK"); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			err = nil
		}
		return
	}
	for n := 0; n < nmark; n++ {
		var (
			tag    string
			nelems int
		)
		if tag, err = rd.token("MARKER_TAG"); err != nil {
			return
		}
		if nelems, err = rd.number("MARKER_ELEMS"); err != nil {
			return
		}
		for i := 0; i < nelems; i++ {
			var (
				ct  types.CellType
				ids []int
			)
			if ct, ids, err = rd.element(); err != nil {
				return
			}
			if ct != types.Line {
				err = fmt.Errorf("line %d: marker %s holds a %s, markers should only contain lines: %w",
					rd.line, tag, ct, ErrFormat)
				return
			}
			if ids[0] >= npoin || ids[1] >= npoin {
				err = fmt.Errorf("line %d: marker %s references a missing point: %w", rd.line, tag, ErrFormat)
				return
			}
			markers[tag] = append(markers[tag], types.NewEdgeKey([2]int{ids[0], ids[1]}))
		}
	}
	return
}

func parseInts(line string) (nums []int, err error) {
	fields := strings.Fields(line)
	nums = make([]int, len(fields))
	for i, f := range fields {
		if nums[i], err = strconv.Atoi(f); err != nil {
			return nil, err
		}
	}
	return
}
