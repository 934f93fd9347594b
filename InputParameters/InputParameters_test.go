package InputParameters

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gocells/types"
)

func TestParse(t *testing.T) {
	var input InputParameters
	require.NoError(t, input.Parse([]byte(ExampleFile)))
	assert.Equal(t, "Polyline", input.Title)
	assert.Equal(t, [3]float64{2, 1, 0}, input.Points[2])
	assert.Equal(t, [][2]int{{0, 1}, {1, 2}, {2, 3}}, input.Lines)
	assert.Equal(t, []int{3}, input.Vertices)
	assert.Equal(t, []float64{0, 1, 2, 3}, input.Scalars["temperature"])
	assert.Equal(t, "temperature", input.ScalarName)
	assert.Equal(t, 1.5, input.Isovalue)
	assert.False(t, input.InsideOut)
	input.Print()

	m, err := input.BuildMesh()
	require.NoError(t, err)
	assert.Equal(t, 4, m.NumberOfPoints())
	assert.Equal(t, 4, m.NumberOfCells())
	assert.Equal(t, []types.CellType{types.Line, types.Line, types.Line, types.Vertex}, m.CellTypes)
	assert.Equal(t, r3.Vec{X: 2, Y: 1}, m.Points.GetPoint(2))
	_, err = m.PointData.GetArray("temperature")
	assert.NoError(t, err)
}

func TestBuildMeshErrors(t *testing.T) {
	input := InputParameters{
		Points: [][3]float64{{0, 0, 0}, {1, 0, 0}},
		Lines:  [][2]int{{0, 2}},
	}
	_, err := input.BuildMesh()
	assert.Error(t, err)

	input.Lines = [][2]int{{0, 1}}
	input.Scalars = map[string][]float64{"s": {1}}
	_, err = input.BuildMesh()
	assert.Error(t, err)

	input.Scalars["s"] = []float64{1, 2}
	input.Vertices = []int{-1}
	_, err = input.BuildMesh()
	assert.Error(t, err)

	input.Vertices = nil
	input.Scalars["s"] = []float64{1, math.NaN()}
	_, err = input.BuildMesh()
	assert.Error(t, err)

	input.Scalars["s"] = []float64{1, 2}
	_, err = input.BuildMesh()
	require.NoError(t, err)
	input.Points[1][1] = math.Inf(1)
	_, err = input.BuildMesh()
	assert.Error(t, err)
}

func TestReadFile(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(fileName, []byte(ExampleFile), 0644))
	ip, err := ReadFile(fileName)
	require.NoError(t, err)
	assert.Len(t, ip.Points, 4)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	require.NoError(t, os.WriteFile(fileName, []byte("Points: [[0, 1"), 0644))
	_, err = ReadFile(fileName)
	assert.Error(t, err)
}

func TestMeshFile(t *testing.T) {
	dir := t.TempDir()
	su2 := `NDIME= 2
NELEM= 2
3 0 1
3 1 2
NPOIN= 3
0 0
1 0
2 0
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "line.su2"), []byte(su2), 0644))
	run := `
Title: "SU2 polyline"
MeshFile: line.su2
Scalars:
  s: [0, 1, 2]
ScalarName: s
Isovalue: 0.5
`
	fileName := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(fileName, []byte(run), 0644))
	ip, err := ReadFile(fileName)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "line.su2"), ip.MeshFile)
	m, err := ip.BuildMesh()
	require.NoError(t, err)
	assert.Equal(t, 3, m.NumberOfPoints())
	assert.Equal(t, []types.CellType{types.Line, types.Line}, m.CellTypes)
	_, err = m.PointData.GetArray("s")
	assert.NoError(t, err)

	ip.Scalars["s"] = []float64{0, 1}
	_, err = ip.BuildMesh()
	assert.Error(t, err)
	ip.Points = [][3]float64{{0, 0, 0}}
	_, err = ip.BuildMesh()
	assert.Error(t, err)
	ip.Points = nil
	ip.MeshFile = filepath.Join(dir, "missing.su2")
	_, err = ip.BuildMesh()
	assert.Error(t, err)
}
