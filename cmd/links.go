/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gocells/InputParameters"
	"github.com/notargets/gocells/links"
	"github.com/notargets/gocells/mesh"
	"github.com/notargets/gocells/readfiles"
	"github.com/notargets/gocells/types"
	"github.com/notargets/gocells/utils"
)

// LinksCmd represents the links command
var LinksCmd = &cobra.Command{
	Use:   "links",
	Short: "Build the point to cell links of a mesh",
	Long: `Build the point to cell links of the mesh in the input file, an SU2
mesh file or a generated closed polyline, and report id width, memory and
build time`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			m             *mesh.Mesh
			n, _          = cmd.Flags().GetInt("generate")
			sequential, _ = cmd.Flags().GetBool("sequential")
			countPerf, _  = cmd.Flags().GetBool("perf")
			meshFile, _   = cmd.Flags().GetString("mesh")
			verbose, _    = cmd.Flags().GetBool("verbose")
		)
		switch {
		case n > 0:
			m = GeneratePolyline(n)
		case meshFile != "":
			var markers readfiles.Markers
			if m, markers, err = readfiles.ReadSU2File(meshFile, verbose); err != nil {
				return
			}
			if verbose {
				PrintMarkers(markers)
			}
		default:
			var ip *InputParameters.InputParameters
			if ip, err = processInput(cmd); err != nil {
				return
			}
			if m, err = ip.BuildMesh(); err != nil {
				return
			}
		}
		ls, err := BuildLinks(m, sequential, countPerf)
		if err != nil {
			return
		}
		ls.Print()
		return
	},
}

func init() {
	rootCmd.AddCommand(LinksCmd)
	LinksCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file with the mesh")
	LinksCmd.Flags().Bool("verbose", false, "print the input parameters")
	LinksCmd.Flags().StringP("mesh", "m", "", "SU2 mesh file to read instead of the input file")
	LinksCmd.Flags().IntP("generate", "n", 0, "generate a closed polyline with this many points instead of reading a file")
	LinksCmd.Flags().Bool("sequential", false, "build the links on one thread")
	LinksCmd.Flags().Bool("perf", false, "count CPU instructions of the build (linux only)")
}

func PrintMarkers(markers readfiles.Markers) {
	tags := make([]string, 0, len(markers))
	for tag := range markers {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		fmt.Printf("Marker[%s] = %d edges\n", tag, len(markers[tag]))
	}
}

// GeneratePolyline returns n points on the unit circle joined by n lines,
// with a vertex cell on every point
func GeneratePolyline(n int) (m *mesh.Mesh) {
	m = mesh.NewMesh(types.NewPoints(n))
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		m.Points.InsertNextPoint(r3.Vec{X: math.Cos(theta), Y: math.Sin(theta)})
	}
	for i := 0; i < n; i++ {
		m.InsertNextCell(types.Line, i, (i+1)%n)
	}
	for i := 0; i < n; i++ {
		m.InsertNextCell(types.Vertex, i)
	}
	return
}

type LinkStats struct {
	Type         links.Type
	Sequential   bool
	Points       int
	Cells        int
	MaxCells     int
	FootprintKiB int
	Elapsed      time.Duration
	Instructions uint64
}

// BuildLinks builds the links of m and collects statistics
func BuildLinks(m *mesh.Mesh, sequential, countPerf bool) (ls LinkStats, err error) {
	cl := links.NewFor(m)
	cl.SetSequentialProcessing(sequential)
	start := time.Now()
	if countPerf {
		if ls.Instructions, err = countInstructions(func() { cl.Build(m) }); err != nil {
			return
		}
	} else {
		cl.Build(m)
	}
	ls.Elapsed = time.Since(start)
	m.Links = cl
	ls.Type = cl.Type()
	ls.Sequential = sequential
	ls.Points = cl.NumberOfPoints()
	ls.Cells = m.NumberOfCells()
	ls.FootprintKiB = cl.MemoryFootprint()
	for pt := 0; pt < ls.Points; pt++ {
		ls.MaxCells = max(ls.MaxCells, cl.NumberOfCells(pt))
	}
	return
}

func (ls LinkStats) Print() {
	fmt.Printf("[%s]\t\t= Links Type\n", ls.Type)
	fmt.Printf("%v\t\t\t= Sequential\n", ls.Sequential)
	fmt.Printf("%d\t\t\t= Points\n", ls.Points)
	fmt.Printf("%d\t\t\t= Cells\n", ls.Cells)
	fmt.Printf("%d\t\t\t= Max Cells per Point\n", ls.MaxCells)
	fmt.Printf("%d\t\t\t= Memory (KiB)\n", ls.FootprintKiB)
	fmt.Printf("%v\t\t= Build Time\n", ls.Elapsed)
	if ls.Instructions != 0 {
		fmt.Printf("%d\t\t= CPU Instructions\n", ls.Instructions)
	}
	fmt.Println(utils.GetMemUsage())
}
