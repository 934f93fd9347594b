package InputParameters

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ghodss/yaml"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gocells/fields"
	"github.com/notargets/gocells/mesh"
	"github.com/notargets/gocells/readfiles"
	"github.com/notargets/gocells/types"
	"github.com/notargets/gocells/utils"
)

// Parameters obtained from the YAML input file
type InputParameters struct {
	Title      string               `json:"Title"`
	MeshFile   string               `json:"MeshFile"` // SU2 mesh used instead of Points, Lines and Vertices
	Points     [][3]float64         `json:"Points"`
	Lines      [][2]int             `json:"Lines"`
	Vertices   []int                `json:"Vertices"`
	Scalars    map[string][]float64 `json:"Scalars"` // Point scalars by name
	ScalarName string               `json:"ScalarName"`
	Isovalue   float64              `json:"Isovalue"`
	InsideOut  bool                 `json:"InsideOut"`
	Tolerance  float64              `json:"Tolerance"`
	Workers    int                  `json:"Workers"`
}

var ExampleFile = `
########################################
Title: "Polyline"
Points: [[0,0,0], [1,0,0], [2,1,0], [3,1,0]]
Lines: [[0,1], [1,2], [2,3]]
Vertices: [3]
Scalars:
  temperature: [0, 1, 2, 3]
ScalarName: temperature
Isovalue: 1.5
InsideOut: false
Tolerance: 0     # zero merges coincident points only
Workers: 0       # zero uses all CPUs
########################################
`

func (ip *InputParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func ReadFile(fileName string) (ip *InputParameters, err error) {
	var data []byte
	if data, err = os.ReadFile(fileName); err != nil {
		return
	}
	ip = &InputParameters{}
	if err = ip.Parse(data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", fileName, err)
	}
	if ip.MeshFile != "" && !filepath.IsAbs(ip.MeshFile) {
		ip.MeshFile = filepath.Join(filepath.Dir(fileName), ip.MeshFile)
	}
	return
}

func (ip *InputParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	if ip.MeshFile != "" {
		fmt.Printf("\"%s\"\t\t= Mesh File\n", ip.MeshFile)
	}
	fmt.Printf("[%d]\t\t\t= Points\n", len(ip.Points))
	fmt.Printf("[%d]\t\t\t= Lines\n", len(ip.Lines))
	fmt.Printf("[%d]\t\t\t= Vertices\n", len(ip.Vertices))
	fmt.Printf("[%s]\t\t= Scalar Name\n", ip.ScalarName)
	fmt.Printf("%8.5f\t\t= Isovalue\n", ip.Isovalue)
	fmt.Printf("%v\t\t\t= InsideOut\n", ip.InsideOut)
	fmt.Printf("%8.5g\t\t= Tolerance\n", ip.Tolerance)
	keys := make([]string, len(ip.Scalars))
	i := 0
	for k := range ip.Scalars {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("Scalars[%s] = %v\n", key, ip.Scalars[key])
	}
}

// BuildMesh validates the connectivity and scalars against the points and
// returns the mesh they describe, lines first then vertices. With a MeshFile
// the mesh is read from it instead.
func (ip *InputParameters) BuildMesh() (m *mesh.Mesh, err error) {
	if ip.MeshFile != "" {
		if len(ip.Points) != 0 || len(ip.Lines) != 0 || len(ip.Vertices) != 0 {
			return nil, fmt.Errorf("MeshFile %s given along with Points, Lines or Vertices", ip.MeshFile)
		}
		if m, _, err = readfiles.ReadSU2File(ip.MeshFile, false); err != nil {
			return nil, err
		}
	} else if m, err = ip.buildPolyline(); err != nil {
		return nil, err
	}
	np := m.NumberOfPoints()
	for name, values := range ip.Scalars {
		if len(values) != np {
			return nil, fmt.Errorf("scalar %q has %d values, have %d points", name, len(values), np)
		}
		if utils.IsNan(values) {
			return nil, fmt.Errorf("scalar %q has NaN values", name)
		}
	}
	// Add in name order so array positions are reproducible
	keys := make([]string, 0, len(ip.Scalars))
	for k := range ip.Scalars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		m.PointData.AddArray(fields.NewScalarArray(k, ip.Scalars[k]))
	}
	return
}

func (ip *InputParameters) buildPolyline() (m *mesh.Mesh, err error) {
	var (
		np = len(ip.Points)
		x  = make([]r3.Vec, np)
	)
	for i, p := range ip.Points {
		x[i] = r3.Vec{X: p[0], Y: p[1], Z: p[2]}
		if !utils.IsFinite(x[i]) {
			return nil, fmt.Errorf("point %d is not finite: %v", i, p)
		}
	}
	m = mesh.NewMesh(types.NewPointsFrom(x))
	checkID := func(kind string, cell, pt int) error {
		if pt < 0 || pt >= np {
			return fmt.Errorf("%s %d references point %d, have %d points", kind, cell, pt, np)
		}
		return nil
	}
	for i, l := range ip.Lines {
		for _, pt := range l {
			if err = checkID("line", i, pt); err != nil {
				return nil, err
			}
		}
		m.InsertNextCell(types.Line, l[0], l[1])
	}
	for i, pt := range ip.Vertices {
		if err = checkID("vertex", i, pt); err != nil {
			return nil, err
		}
		m.InsertNextCell(types.Vertex, pt)
	}
	return
}
