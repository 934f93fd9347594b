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
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gocells/InputParameters"
	"github.com/notargets/gocells/mesh"
)

// ContourCmd represents the contour command
var ContourCmd = &cobra.Command{
	Use:   "contour",
	Short: "Contour the cells of a mesh on a point scalar",
	Long: `Contour the cells of the mesh in the input file where the point scalar
named by ScalarName equals Isovalue, printing the resulting points and cells`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ip, err := processInput(cmd)
		if err != nil {
			return err
		}
		out, err := RunFilter(cmd.Context(), ip, false, viper.GetInt("workers"))
		if err != nil {
			return err
		}
		Report(out)
		return nil
	},
}

// ClipCmd represents the clip command
var ClipCmd = &cobra.Command{
	Use:   "clip",
	Short: "Clip the cells of a mesh on a point scalar",
	Long: `Clip the cells of the mesh in the input file, keeping the part where
the point scalar named by ScalarName is above Isovalue, or at or below it with
--insideOut`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ip, err := processInput(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("insideOut") {
			ip.InsideOut, _ = cmd.Flags().GetBool("insideOut")
		}
		out, err := RunFilter(cmd.Context(), ip, true, viper.GetInt("workers"))
		if err != nil {
			return err
		}
		Report(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ContourCmd)
	rootCmd.AddCommand(ClipCmd)
	for _, c := range []*cobra.Command{ContourCmd, ClipCmd} {
		c.Flags().StringP("inputConditionsFile", "I", "", "YAML file with the mesh, scalars and isovalue")
		c.Flags().Bool("verbose", false, "print the input parameters")
	}
	ClipCmd.Flags().Bool("insideOut", false, "keep the part at or below the isovalue")
}

func processInput(cmd *cobra.Command) (ip *InputParameters.InputParameters, err error) {
	var fileName string
	if fileName, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
		return
	}
	if len(fileName) == 0 {
		fmt.Printf("Example File:%s\n", InputParameters.ExampleFile)
		err = fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile)")
		return
	}
	if ip, err = InputParameters.ReadFile(fileName); err != nil {
		return
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		ip.Print()
	}
	return
}

// RunFilter contours or clips the mesh of ip. A non zero workers overrides
// the input file.
func RunFilter(ctx context.Context, ip *InputParameters.InputParameters, clip bool,
	workers int) (out *mesh.Mesh, err error) {
	var m *mesh.Mesh
	if m, err = ip.BuildMesh(); err != nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	opts := mesh.FilterOptions{
		Workers:   ip.Workers,
		Tolerance: ip.Tolerance,
		Verbose:   true,
	}
	if workers != 0 {
		opts.Workers = workers
	}
	if clip {
		return mesh.Clip(ctx, m, ip.ScalarName, ip.Isovalue, ip.InsideOut, opts)
	}
	return mesh.Contour(ctx, m, ip.ScalarName, ip.Isovalue, opts)
}

// Report prints the points, point data and cells of a mesh
func Report(m *mesh.Mesh) {
	fmt.Printf("Points: %d\n", m.NumberOfPoints())
	if box := m.Points.Bounds(); box != nil {
		fmt.Printf("Bounds: [%8.5f, %8.5f, %8.5f] - [%8.5f, %8.5f, %8.5f]\n",
			box.Min.X, box.Min.Y, box.Min.Z, box.Max.X, box.Max.Y, box.Max.Z)
	}
	for _, da := range m.PointData.Arrays {
		lo, hi := da.Range(0)
		fmt.Printf("Range[%s] = [%8.5f, %8.5f]\n", da.Name, lo, hi)
	}
	for pt := 0; pt < m.NumberOfPoints(); pt++ {
		x := m.Points.GetPoint(pt)
		fmt.Printf("  %4d: [%8.5f, %8.5f, %8.5f]", pt, x.X, x.Y, x.Z)
		for _, da := range m.PointData.Arrays {
			if pt < da.NumberOfTuples() {
				fmt.Printf("  %s = %v", da.Name, da.Tuple(pt))
			}
		}
		fmt.Printf("\n")
	}
	fmt.Printf("Cells: %d\n", m.NumberOfCells())
	for c := 0; c < m.NumberOfCells(); c++ {
		fmt.Printf("  %4d: %-8s %v\n", c, m.CellTypes[c], m.CellPointIDs(c))
	}
}
