package links

import (
	"sync"
	"unsafe"

	"github.com/james-bowman/sparse"

	"github.com/notargets/gocells/utils"
)

type ID interface {
	~uint16 | ~uint32 | ~int64
}

// StaticLinks stores the links of all points in one flat array. The cells of
// point p are Links[Offsets[p]:Offsets[p+1]]. T must hold the largest point
// id, cell id and the connectivity length.
type StaticLinks[T ID] struct {
	typ        Type
	sequential bool
	numPts     int
	numCells   int
	offsets    []T
	links      []T
}

func NewStaticLinks[T ID]() *StaticLinks[T] {
	var (
		zero T
		typ  Type
	)
	switch unsafe.Sizeof(zero) {
	case 2:
		typ = StaticUint16
	case 4:
		typ = StaticUint32
	default:
		typ = StaticInt64
	}
	return &StaticLinks[T]{typ: typ}
}

func (sl *StaticLinks[T]) Type() Type { return sl.typ }

func (sl *StaticLinks[T]) SetSequentialProcessing(sequential bool) {
	sl.sequential = sequential
}

func (sl *StaticLinks[T]) SequentialProcessing() bool { return sl.sequential }

func (sl *StaticLinks[T]) NumberOfPoints() int { return sl.numPts }

func (sl *StaticLinks[T]) NumberOfCells(ptID int) int {
	return int(sl.offsets[ptID+1] - sl.offsets[ptID])
}

// Cells returns the cells of ptID without copying
func (sl *StaticLinks[T]) Cells(ptID int) []T {
	return sl.links[int(sl.offsets[ptID]):int(sl.offsets[ptID+1])]
}

func (sl *StaticLinks[T]) AppendCells(dst []int, ptID int) []int {
	for _, c := range sl.Cells(ptID) {
		dst = append(dst, int(c))
	}
	return dst
}

func (sl *StaticLinks[T]) Build(conn Connectivity) {
	var (
		numPts   = conn.NumberOfPoints()
		numCells = conn.NumberOfCells()
		NP       = 1
	)
	if !sl.sequential {
		NP = utils.ParallelDegree(0, numPts)
	}
	sl.numPts, sl.numCells = numPts, numCells
	sl.offsets = resize(sl.offsets, numPts+1)
	pm := utils.NewPartitionMap(NP, numPts)

	// Count the cells of each point, each worker owns a range of points
	sl.forEachRange(pm, func(ptMin, ptMax int) {
		for cellID := 0; cellID < numCells; cellID++ {
			ids := conn.CellPointIDs(cellID)
			for k, pt := range ids {
				if pt >= ptMin && pt < ptMax && firstOccurrence(ids, k) {
					sl.offsets[pt]++
				}
			}
		}
	})

	// Offsets need all counts
	var total T
	for pt := 0; pt < numPts; pt++ {
		count := sl.offsets[pt]
		sl.offsets[pt] = total
		total += count
	}
	sl.offsets[numPts] = total
	sl.links = resize(sl.links, int(total))

	// Scatter cell ids into the slots of each point range
	sl.forEachRange(pm, func(ptMin, ptMax int) {
		cursor := make([]T, ptMax-ptMin)
		copy(cursor, sl.offsets[ptMin:ptMax])
		for cellID := 0; cellID < numCells; cellID++ {
			ids := conn.CellPointIDs(cellID)
			for k, pt := range ids {
				if pt >= ptMin && pt < ptMax && firstOccurrence(ids, k) {
					sl.links[int(cursor[pt-ptMin])] = T(cellID)
					cursor[pt-ptMin]++
				}
			}
		}
	})
}

func (sl *StaticLinks[T]) forEachRange(pm *utils.PartitionMap, f func(ptMin, ptMax int)) {
	if pm.ParallelDegree == 1 {
		f(pm.GetBucketRange(0))
		return
	}
	var wg sync.WaitGroup
	for np := 0; np < pm.ParallelDegree; np++ {
		wg.Add(1)
		go func(np int) {
			f(pm.GetBucketRange(np))
			wg.Done()
		}(np)
	}
	wg.Wait()
}

// firstOccurrence is false when ids[k] is repeated earlier in the cell
func firstOccurrence(ids []int, k int) bool {
	for j := 0; j < k; j++ {
		if ids[j] == ids[k] {
			return false
		}
	}
	return true
}

// resize returns a zeroed slice of length n, reusing storage when it fits
func resize[T ID](s []T, n int) []T {
	if cap(s) < n {
		return make([]T, n)
	}
	s = s[:n]
	clear(s)
	return s
}

func (sl *StaticLinks[T]) Initialize() {
	sl.numPts, sl.numCells = 0, 0
	sl.offsets, sl.links = nil, nil
}

func (sl *StaticLinks[T]) Reset() {
	sl.numPts, sl.numCells = 0, 0
	sl.offsets, sl.links = sl.offsets[:0], sl.links[:0]
}

func (sl *StaticLinks[T]) Squeeze() {
	sl.offsets = squeeze(sl.offsets)
	sl.links = squeeze(sl.links)
}

func squeeze[T ID](s []T) []T {
	if cap(s) == len(s) {
		return s
	}
	return append(make([]T, 0, len(s)), s...)
}

func (sl *StaticLinks[T]) MemoryFootprint() int {
	var (
		zero  T
		bytes = uint64(cap(sl.offsets)+cap(sl.links)) * uint64(unsafe.Sizeof(zero))
	)
	return int((bytes + 1023) / 1024)
}

func (sl *StaticLinks[T]) DeepCopy() CellLinks {
	return &StaticLinks[T]{
		typ:        sl.typ,
		sequential: sl.sequential,
		numPts:     sl.numPts,
		numCells:   sl.numCells,
		offsets:    append([]T(nil), sl.offsets...),
		links:      append([]T(nil), sl.links...),
	}
}

func (sl *StaticLinks[T]) Incidence() *sparse.CSR {
	var (
		indptr = make([]int, sl.numPts+1)
		ind    = make([]int, len(sl.links))
		data   = make([]float64, len(sl.links))
	)
	for pt := range sl.offsets {
		indptr[pt] = int(sl.offsets[pt])
	}
	for i, c := range sl.links {
		ind[i] = int(c)
		data[i] = 1
	}
	return sparse.NewCSR(sl.numPts, sl.numCells, indptr, ind, data)
}
