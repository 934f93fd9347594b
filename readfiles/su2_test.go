package readfiles

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gocells/types"
)

func TestReadSU2(t *testing.T) {
	m, markers, err := ReadSU2(bytes.NewReader(inputFile))
	require.NoError(t, err)
	assert.Equal(t, 18, m.NumberOfPoints())
	assert.Equal(t, 22, m.NumberOfCells())
	assert.Equal(t, map[types.CellType]int{types.Triangle: 22}, m.CellTypeCounts())
	assert.Equal(t, []int{15, 11, 17}, m.CellPointIDs(21))
	assert.Equal(t, r3.Vec{X: -7.100939331382065, Y: 2.889910324036197}, m.Points.GetPoint(17))

	tags := make([]string, 0, len(markers))
	for tag := range markers {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	assert.Equal(t, []string{"bottom", "periodic-left", "periodic-right", "top"}, tags)
	assert.Len(t, markers["top"], 4)
	assert.Equal(t, [2]int{2, 8}, markers["top"][0].GetVertices(false))
	assert.Equal(t, [2]int{0, 11}, markers["periodic-left"][1].GetVertices(false))

	// A triangulated disk: E = V + F - 1, interior edges shared by two cells,
	// boundary edges used by one
	edges := m.Edges()
	assert.Len(t, edges, 39)
	usage := func(ek types.EdgeKey) (n int) {
		v := ek.GetVertices(false)
		for _, c := range m.PointCells(v[0]) {
			for _, pt := range m.CellPointIDs(c) {
				if pt == v[1] {
					n++
				}
			}
		}
		return
	}
	var boundary int
	for _, ek := range edges {
		n := usage(ek)
		assert.True(t, n == 1 || n == 2)
		if n == 1 {
			boundary++
		}
	}
	assert.Equal(t, 12, boundary)
	for _, tag := range tags {
		for _, ek := range markers[tag] {
			assert.Equal(t, 1, usage(ek), "marker %s edge %v", tag, ek.GetVertices(false))
		}
	}
}

func TestReadSU2Polyline(t *testing.T) {
	file := `NDIME= 3
NELEM= 3
3 0 1 0
3 1 2 1
1 2
NPOIN= 3
0 0 0 0
1 0 1 1
2 1 1
`
	m, markers, err := ReadSU2(strings.NewReader(file))
	require.NoError(t, err)
	assert.Empty(t, markers)
	assert.Equal(t, map[types.CellType]int{types.Line: 2, types.Vertex: 1}, m.CellTypeCounts())
	assert.Equal(t, r3.Vec{X: 1, Z: 1}, m.Points.GetPoint(1))
	assert.Equal(t, r3.Vec{X: 2, Y: 1, Z: 1}, m.Points.GetPoint(2))
	assert.Equal(t, []int{1, 2}, m.PointCells(2))

	dir := t.TempDir()
	fileName := filepath.Join(dir, "polyline.su2")
	require.NoError(t, os.WriteFile(fileName, []byte(file), 0o644))
	m, _, err = ReadSU2File(fileName, false)
	require.NoError(t, err)
	assert.Equal(t, 3, m.NumberOfCells())
	_, _, err = ReadSU2File(filepath.Join(dir, "missing.su2"), false)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReadSU2Errors(t *testing.T) {
	for name, file := range map[string]string{
		"dimension":     "NDIME= 4\n",
		"missing nelem": "NDIME= 2\nNPOIN= 1\n0 0\n",
		"element type":  "NDIME= 2\nNELEM= 1\n99 0 1\nNPOIN= 2\n0 0\n1 0\n",
		"short element": "NDIME= 2\nNELEM= 1\n5 0 1\nNPOIN= 2\n0 0\n1 0\n",
		"point id":      "NDIME= 2\nNELEM= 1\n3 0 2\nNPOIN= 2\n0 0\n1 0\n",
		"coordinates":   "NDIME= 2\nNELEM= 1\n3 0 1\nNPOIN= 2\n0 0\n1\n",
		"marker cell":   "NDIME= 2\nNELEM= 1\n3 0 1\nNPOIN= 2\n0 0\n1 0\nNMARK= 1\nMARKER_TAG= a\nMARKER_ELEMS= 1\n1 0\n",
	} {
		_, _, err := ReadSU2(strings.NewReader(file))
		assert.True(t, errors.Is(err, ErrFormat), name)
	}
	// Truncated inside a section
	_, _, err := ReadSU2(strings.NewReader("NDIME= 2\nNELEM= 2\n3 0 1\n"))
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
}

var (
	inputFile = []byte(` %This is an example input file in SU2 format, output from gmsh
% Comments can appear outside of data areas
NDIME= 2
% Comments can appear outside of data areas
NELEM= 22
5 5 6 13 0
5 9 10 12 1
5 12 5 13 2
5 9 12 13 3
5 13 6 14 4
5 12 10 15 5
5 8 9 13 6
5 4 5 12 7
5 1 7 14 8
5 6 1 14 9
5 3 11 15 10
5 10 3 15 11
5 8 13 16 12
5 4 12 17 13
5 13 14 16 14
5 12 15 17 15
5 7 2 16 16
5 11 0 17 17
5 2 8 16 18
5 0 4 17 19
5 14 7 16 20
5 15 11 17 21
% Comments can appear outside of data areas
NPOIN= 18
-10 0 0
10 0 1
10 10 2
-10 10 3
-5.000000000004944 0 4
-1.231725832440134e-11 0 5
4.99999999999384 0 6
10 4.999999999992398 7
5.000000000004944 10 8
1.231725832440134e-11 10 9
-4.99999999999384 10 10
-10 5 11
-2.500000000008632 4.330127018915808 12
2.50000000000863 5.669872981084192 13
6.712741669205853 3.668411415814691 14
-6.712741669205681 6.331588584184096 15
7.100939331384343 7.110089675963254 16
-7.100939331382065 2.889910324036197 17
NMARK= 4
% Comments can appear outside of data areas
MARKER_TAG= periodic-left
% Comments can appear outside of data areas
MARKER_ELEMS= 2
3 3 11
3 11 0
% Comments can appear outside of data areas
MARKER_TAG= periodic-right
MARKER_ELEMS= 2
3 1 7
3 7 2
% Comments can appear outside of data areas
MARKER_TAG= top
MARKER_ELEMS= 4
3 2 8
3 8 9
3 9 10
3 10 3
MARKER_TAG= bottom
% Comments can appear outside of data areas
MARKER_ELEMS= 4
3 0 4
3 4 5
3 5 6
3 6 1
% Comments can appear outside of data areas
`)
)
