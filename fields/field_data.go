package fields

import (
	"fmt"
)

// FieldData is an ordered set of named arrays sharing one tuple id space.
// Output FieldData is created with CopyAllocate from its input so that arrays
// correspond by position.
type FieldData struct {
	Arrays []*DataArray
	byName map[string]int
}

func NewFieldData() *FieldData {
	return &FieldData{byName: make(map[string]int)}
}

func (fd *FieldData) AddArray(da *DataArray) {
	if idx, ok := fd.byName[da.Name]; ok {
		fd.Arrays[idx] = da
		return
	}
	fd.byName[da.Name] = len(fd.Arrays)
	fd.Arrays = append(fd.Arrays, da)
}

func (fd *FieldData) GetArray(name string) (da *DataArray, err error) {
	idx, ok := fd.byName[name]
	if !ok {
		err = fmt.Errorf("no array named %q", name)
		return
	}
	da = fd.Arrays[idx]
	return
}

func (fd *FieldData) NumberOfArrays() int { return len(fd.Arrays) }

// CopyAllocate returns empty FieldData with the same array layout as fd
func (fd *FieldData) CopyAllocate() (out *FieldData) {
	out = NewFieldData()
	for _, da := range fd.Arrays {
		out.AddArray(NewDataArray(da.Name, da.NumComponents))
	}
	return
}

// InterpolateEdge writes into tuple toID of every array the interpolation
// along the edge (p1, p2) of the matching source array at parameter t.
func (fd *FieldData) InterpolateEdge(src *FieldData, toID, p1, p2 int, t float64) {
	for i, da := range fd.Arrays {
		da.InterpolateTuple(toID, src.Arrays[i], p1, p2, t)
	}
}

// CopyData copies tuple fromID of every source array verbatim into toID
func (fd *FieldData) CopyData(src *FieldData, fromID, toID int) {
	for i, da := range fd.Arrays {
		da.CopyTuple(toID, src.Arrays[i], fromID)
	}
}
