package mesh

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/notargets/gocells/cells"
	"github.com/notargets/gocells/fields"
	"github.com/notargets/gocells/locator"
	"github.com/notargets/gocells/types"
	"github.com/notargets/gocells/utils"
)

type FilterOptions struct {
	// Workers bounds the number of concurrent partitions, zero selects
	// runtime.NumCPU()
	Workers int
	// Output points closer than Tolerance are merged, zero merges only
	// coincident points
	Tolerance float64
	Verbose   bool
}

// partition collects the output cells of one range of input cells in a
// single cell id space, whatever sink produced them
type partition struct {
	cells    *CellArray
	types    []types.CellType
	cellData *fields.FieldData
}

type typedSink struct {
	part *partition
	ct   types.CellType
}

func (ts typedSink) InsertNextCell(ptIDs ...int) int {
	ct := ts.ct
	if ct == types.EmptyCell {
		switch len(ptIDs) {
		case 3:
			ct = types.Triangle
		case 4:
			ct = types.Quad
		}
	}
	ts.part.types = append(ts.part.types, ct)
	return ts.part.cells.InsertNextCell(ptIDs...)
}

type cellOperator func(c cells.Cell, cellScalars []float64, cellID int, out *cells.Output)

// Contour extracts from every cell the geometry where the named point scalar
// equals value. Point data is interpolated onto new points, cell data is
// copied from the source cell.
func Contour(ctx context.Context, m *Mesh, array string, value float64,
	opts FilterOptions) (*Mesh, error) {
	return apply(ctx, "contour", m, array, opts,
		func(c cells.Cell, cellScalars []float64, cellID int, out *cells.Output) {
			c.Contour(value, cellScalars, cellID, out)
		})
}

// Clip keeps the part of every cell where the named point scalar is above
// value, or at or below it when insideOut.
func Clip(ctx context.Context, m *Mesh, array string, value float64, insideOut bool,
	opts FilterOptions) (*Mesh, error) {
	return apply(ctx, "clip", m, array, opts,
		func(c cells.Cell, cellScalars []float64, cellID int, out *cells.Output) {
			c.Clip(value, cellScalars, cellID, insideOut, out)
		})
}

// apply runs op over disjoint ranges of cells concurrently. All partitions
// share one locator and output point data; output cells are concatenated in
// partition order so cell ids do not depend on scheduling.
func apply(ctx context.Context, name string, m *Mesh, array string, opts FilterOptions,
	op cellOperator) (out *Mesh, err error) {
	scalars, err := m.PointData.GetArray(array)
	if err != nil {
		return nil, fmt.Errorf("%s on %q: %w", name, array, ErrMissingArray)
	}
	var (
		nc    = m.NumberOfCells()
		NP    = utils.ParallelDegree(opts.Workers, nc)
		pm    = utils.NewPartitionMap(NP, nc)
		parts = make([]*partition, NP)
		outPD = m.PointData.CopyAllocate()
	)
	out = NewMesh(nil)
	loc := locator.New(out.Points, opts.Tolerance)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(NP)
	for np := 0; np < NP; np++ {
		part := &partition{
			cells:    NewCellArray(),
			cellData: m.CellData.CopyAllocate(),
		}
		parts[np] = part
		kMin, kMax := pm.GetBucketRange(np)
		g.Go(func() error {
			var (
				cellScalars = make([]float64, 0, m.Cells.MaxCellSize())
				cout        = &cells.Output{
					Locator: loc,
					Verts:   typedSink{part: part, ct: types.Vertex},
					Lines:   typedSink{part: part, ct: types.Line},
					Polys:   typedSink{part: part, ct: types.EmptyCell},
					InPD:    m.PointData,
					OutPD:   outPD,
					InCD:    m.CellData,
					OutCD:   part.cellData,
				}
			)
			for cellID := kMin; cellID < kMax; cellID++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				c, err := m.GetCell(cellID)
				if err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
				cellScalars = cellScalars[:0]
				for _, pt := range c.PointIDs() {
					cellScalars = append(cellScalars, scalars.GetComponent(pt, 0))
				}
				op(c, cellScalars, cellID, cout)
			}
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	out.PointData = outPD
	out.CellData = m.CellData.CopyAllocate()
	for _, part := range parts {
		for local := 0; local < part.cells.NumberOfCells(); local++ {
			cellID := out.InsertNextCell(part.types[local], part.cells.CellPointIDs(local)...)
			out.CellData.CopyData(part.cellData, local, cellID)
		}
	}
	if opts.Verbose {
		log.Printf("%s %q: %d cells on %d workers -> %d points, %d cells",
			name, array, nc, NP, out.NumberOfPoints(), out.NumberOfCells())
	}
	return
}
