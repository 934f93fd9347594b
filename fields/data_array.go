// Package fields holds per point and per cell attribute arrays and the
// interpolation/copy operations used when cells synthesize new geometry.
package fields

import (
	"fmt"
	"sync"

	"gonum.org/v1/gonum/floats"
)

// DataArray stores NumComponents values per tuple, tuple id is the point or
// cell id. Writes are guarded so that concurrent producers may share one
// output array.
type DataArray struct {
	Name          string
	NumComponents int
	mu            sync.RWMutex
	data          []float64
}

func NewDataArray(name string, numComponents int) *DataArray {
	if numComponents < 1 {
		panic(fmt.Errorf("data array %q must have at least one component, have %d",
			name, numComponents))
	}
	return &DataArray{
		Name:          name,
		NumComponents: numComponents,
	}
}

// NewScalarArray wraps the values as a one component array without copying
func NewScalarArray(name string, values []float64) *DataArray {
	return &DataArray{
		Name:          name,
		NumComponents: 1,
		data:          values,
	}
}

func (da *DataArray) NumberOfTuples() int {
	da.mu.RLock()
	defer da.mu.RUnlock()
	return len(da.data) / da.NumComponents
}

func (da *DataArray) GetComponent(tupleID, comp int) float64 {
	da.mu.RLock()
	defer da.mu.RUnlock()
	return da.data[tupleID*da.NumComponents+comp]
}

// Tuple returns a copy of the tuple
func (da *DataArray) Tuple(tupleID int) (tuple []float64) {
	tuple = make([]float64, da.NumComponents)
	da.mu.RLock()
	copy(tuple, da.data[tupleID*da.NumComponents:])
	da.mu.RUnlock()
	return
}

// Data returns the raw storage, tuples are contiguous
func (da *DataArray) Data() []float64 { return da.data }

// SetTuple writes the tuple at tupleID, growing the array if needed. Tuples
// skipped over by the growth are zero.
func (da *DataArray) SetTuple(tupleID int, tuple []float64) {
	da.mu.Lock()
	defer da.mu.Unlock()
	da.setTuple(tupleID, tuple)
}

func (da *DataArray) setTuple(tupleID int, tuple []float64) {
	var (
		nc  = da.NumComponents
		end = (tupleID + 1) * nc
	)
	if end > len(da.data) {
		if end <= cap(da.data) {
			da.data = da.data[:end]
		} else {
			grown := make([]float64, end, 2*end)
			copy(grown, da.data)
			da.data = grown
		}
	}
	copy(da.data[tupleID*nc:end], tuple)
}

func (da *DataArray) InsertNextTuple(tuple []float64) (tupleID int) {
	da.mu.Lock()
	defer da.mu.Unlock()
	tupleID = len(da.data) / da.NumComponents
	da.setTuple(tupleID, tuple)
	return
}

// InterpolateTuple sets tuple toID to src[p1] + t*(src[p2]-src[p1]).
func (da *DataArray) InterpolateTuple(toID int, src *DataArray, p1, p2 int, t float64) {
	var (
		a   = src.Tuple(p1)
		b   = src.Tuple(p2)
		dst = make([]float64, da.NumComponents)
	)
	floats.SubTo(dst, b, a)
	floats.AddScaledTo(dst, a, t, dst)
	da.SetTuple(toID, dst)
}

// CopyTuple sets tuple toID to src[fromID]
func (da *DataArray) CopyTuple(toID int, src *DataArray, fromID int) {
	da.SetTuple(toID, src.Tuple(fromID))
}

// Range returns the min and max of one component over all tuples
func (da *DataArray) Range(comp int) (lo, hi float64) {
	da.mu.RLock()
	defer da.mu.RUnlock()
	n := len(da.data) / da.NumComponents
	if n == 0 {
		return
	}
	col := make([]float64, n)
	for i := range col {
		col[i] = da.data[i*da.NumComponents+comp]
	}
	return floats.Min(col), floats.Max(col)
}
