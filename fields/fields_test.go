package fields

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataArray(t *testing.T) {
	da := NewDataArray("velocity", 3)
	assert.Equal(t, 0, da.NumberOfTuples())
	id := da.InsertNextTuple([]float64{1, 2, 3})
	assert.Equal(t, 0, id)
	da.SetTuple(2, []float64{3, 6, 9})
	assert.Equal(t, 3, da.NumberOfTuples())
	assert.Equal(t, []float64{0, 0, 0}, da.Tuple(1))
	assert.Equal(t, 6., da.GetComponent(2, 1))

	out := NewDataArray("velocity", 3)
	out.InterpolateTuple(0, da, 0, 2, 0.5)
	assert.Equal(t, []float64{2, 4, 6}, out.Tuple(0))
	out.InterpolateTuple(1, da, 0, 2, 0)
	assert.Equal(t, []float64{1, 2, 3}, out.Tuple(1))
	out.CopyTuple(4, da, 2)
	assert.Equal(t, []float64{3, 6, 9}, out.Tuple(4))

	lo, hi := da.Range(2)
	assert.Equal(t, 0., lo)
	assert.Equal(t, 9., hi)

	assert.Panics(t, func() { NewDataArray("bad", 0) })
}

func TestFieldData(t *testing.T) {
	in := NewFieldData()
	in.AddArray(NewScalarArray("temperature", []float64{10, 20, 30}))
	vel := NewDataArray("velocity", 2)
	for i := 0; i < 3; i++ {
		vel.InsertNextTuple([]float64{float64(i), -float64(i)})
	}
	in.AddArray(vel)
	require.Equal(t, 2, in.NumberOfArrays())

	_, err := in.GetArray("pressure")
	assert.Error(t, err)

	out := in.CopyAllocate()
	require.Equal(t, 2, out.NumberOfArrays())
	out.InterpolateEdge(in, 0, 1, 2, 0.25)
	out.CopyData(in, 0, 1)
	temp, err := out.GetArray("temperature")
	require.NoError(t, err)
	assert.Equal(t, 22.5, temp.GetComponent(0, 0))
	assert.Equal(t, 10., temp.GetComponent(1, 0))
	v, err := out.GetArray("velocity")
	require.NoError(t, err)
	assert.Equal(t, []float64{1.25, -1.25}, v.Tuple(0))

	// Replacing an array by name keeps its position
	in.AddArray(NewScalarArray("temperature", []float64{0, 0, 0}))
	assert.Equal(t, 2, in.NumberOfArrays())
	assert.Equal(t, "temperature", in.Arrays[0].Name)
}

func TestDataArrayConcurrentWrites(t *testing.T) {
	var (
		da = NewDataArray("s", 1)
		wg sync.WaitGroup
		N  = 1000
	)
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := w; i < N; i += 4 {
				da.SetTuple(i, []float64{float64(i)})
			}
		}(w)
	}
	wg.Wait()
	require.Equal(t, N, da.NumberOfTuples())
	for i := 0; i < N; i++ {
		assert.Equal(t, float64(i), da.GetComponent(i, 0))
	}
}
