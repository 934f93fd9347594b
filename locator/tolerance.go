package locator

import (
	"sync"

	"github.com/dhconnelly/rtreego"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gocells/types"
	"github.com/notargets/gocells/utils"
)

const (
	rtreeMinChildren = 25
	rtreeMaxChildren = 50
)

type indexedPoint struct {
	id     int
	x      r3.Vec
	bounds rtreego.Rect
}

func (ip *indexedPoint) Bounds() rtreego.Rect { return ip.bounds }

func toPoint(x r3.Vec) rtreego.Point { return rtreego.Point{x.X, x.Y, x.Z} }

// TolerancePoints merges points closer than Tolerance. When several inserted
// points are within tolerance the nearest one is returned.
type TolerancePoints struct {
	Tolerance float64
	mu        sync.Mutex
	points    *types.Points
	tree      *rtreego.Rtree
}

func NewTolerancePoints(points *types.Points, tol float64) (tp *TolerancePoints) {
	tp = &TolerancePoints{
		Tolerance: tol,
		points:    points,
		tree:      rtreego.NewTree(3, rtreeMinChildren, rtreeMaxChildren),
	}
	for id, x := range points.X {
		if _, ok := tp.find(x); !ok {
			tp.insert(id, x)
		}
	}
	return
}

func (tp *TolerancePoints) InsertUniquePoint(x r3.Vec) (id int, isNew bool) {
	tp.mu.Lock()
	defer tp.mu.Unlock()
	if id, ok := tp.find(x); ok {
		return id, false
	}
	id = tp.points.InsertNextPoint(x)
	tp.insert(id, x)
	return id, true
}

func (tp *TolerancePoints) IsInsertedPoint(x r3.Vec) (id int, ok bool) {
	tp.mu.Lock()
	defer tp.mu.Unlock()
	return tp.find(x)
}

func (tp *TolerancePoints) Points() *types.Points { return tp.points }

func (tp *TolerancePoints) Size() int { return tp.tree.Size() }

func (tp *TolerancePoints) insert(id int, x r3.Vec) {
	tp.tree.Insert(&indexedPoint{
		id:     id,
		x:      x,
		bounds: toPoint(x).ToRect(0.5 * tp.Tolerance),
	})
}

func (tp *TolerancePoints) find(x r3.Vec) (id int, ok bool) {
	var (
		tol2    = tp.Tolerance * tp.Tolerance
		minDist = utils.DOUBLEMAX
	)
	for _, obj := range tp.tree.SearchIntersect(toPoint(x).ToRect(tp.Tolerance)) {
		ip := obj.(*indexedPoint)
		if d2 := utils.Distance2(ip.x, x); d2 <= tol2 && d2 < minDist {
			minDist, id, ok = d2, ip.id, true
		}
	}
	return
}
