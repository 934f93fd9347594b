// Package locator deduplicates points synthesized by contouring and clipping.
// Locators append new points to a caller supplied point set and are safe for
// concurrent use.
package locator

import (
	"sync"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gocells/types"
)

type Locator interface {
	// InsertUniquePoint returns the id of the point coincident with x,
	// appending x to the point set when there is none
	InsertUniquePoint(x r3.Vec) (id int, isNew bool)
	IsInsertedPoint(x r3.Vec) (id int, ok bool)
	Points() *types.Points
}

// New returns an exact locator for a zero tolerance, otherwise a tolerance
// locator. Points already in the set are registered.
func New(points *types.Points, tol float64) Locator {
	if tol <= 0 {
		return NewMergePoints(points)
	}
	return NewTolerancePoints(points, tol)
}

// MergePoints merges points with identical coordinates
type MergePoints struct {
	mu     sync.Mutex
	points *types.Points
	ids    map[r3.Vec]int
}

func NewMergePoints(points *types.Points) (mp *MergePoints) {
	mp = &MergePoints{
		points: points,
		ids:    make(map[r3.Vec]int, points.NumberOfPoints()),
	}
	for id, x := range points.X {
		if _, ok := mp.ids[x]; !ok {
			mp.ids[x] = id
		}
	}
	return
}

func (mp *MergePoints) InsertUniquePoint(x r3.Vec) (id int, isNew bool) {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	if id, ok := mp.ids[x]; ok {
		return id, false
	}
	id = mp.points.InsertNextPoint(x)
	mp.ids[x] = id
	return id, true
}

func (mp *MergePoints) IsInsertedPoint(x r3.Vec) (id int, ok bool) {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	id, ok = mp.ids[x]
	return
}

func (mp *MergePoints) Points() *types.Points { return mp.points }
