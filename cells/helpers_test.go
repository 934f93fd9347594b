package cells

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gocells/fields"
)

type exactLocator struct {
	points []r3.Vec
	ids    map[r3.Vec]int
}

func newExactLocator(existing ...r3.Vec) *exactLocator {
	el := &exactLocator{ids: make(map[r3.Vec]int)}
	for _, x := range existing {
		el.InsertUniquePoint(x)
	}
	return el
}

func (el *exactLocator) InsertUniquePoint(x r3.Vec) (id int, isNew bool) {
	if id, ok := el.ids[x]; ok {
		return id, false
	}
	id = len(el.points)
	el.points = append(el.points, x)
	el.ids[x] = id
	return id, true
}

type cellList [][]int

func (cl *cellList) InsertNextCell(ptIDs ...int) int {
	*cl = append(*cl, append([]int(nil), ptIDs...))
	return len(*cl) - 1
}

func newOutput(loc PointLocator, inPD, inCD *fields.FieldData) (out *Output, verts, lines *cellList) {
	verts, lines = &cellList{}, &cellList{}
	out = &Output{
		Locator: loc,
		Verts:   verts,
		Lines:   lines,
		InPD:    inPD,
		InCD:    inCD,
	}
	if inPD != nil {
		out.OutPD = inPD.CopyAllocate()
	}
	if inCD != nil {
		out.OutCD = inCD.CopyAllocate()
	}
	return
}

func scalarData(name string, values ...float64) *fields.FieldData {
	fd := fields.NewFieldData()
	fd.AddArray(fields.NewScalarArray(name, values))
	return fd
}
