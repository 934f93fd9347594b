package types

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Points is the point set of a mesh. A point id is its index.
type Points struct {
	X []r3.Vec
}

func NewPoints(capacity int) *Points {
	return &Points{X: make([]r3.Vec, 0, capacity)}
}

func NewPointsFrom(x []r3.Vec) *Points {
	return &Points{X: x}
}

func (p *Points) NumberOfPoints() int { return len(p.X) }

func (p *Points) GetPoint(id int) r3.Vec { return p.X[id] }

// SetPoint overwrites an existing point
func (p *Points) SetPoint(id int, x r3.Vec) { p.X[id] = x }

// InsertPoint sets the point at id, growing the set if needed
func (p *Points) InsertPoint(id int, x r3.Vec) {
	if id >= len(p.X) {
		if id < cap(p.X) {
			p.X = p.X[:id+1]
		} else {
			grown := make([]r3.Vec, id+1, 2*(id+1))
			copy(grown, p.X)
			p.X = grown
		}
	}
	p.X[id] = x
}

func (p *Points) InsertNextPoint(x r3.Vec) (id int) {
	id = len(p.X)
	p.X = append(p.X, x)
	return
}

// Bounds returns the axis aligned bounding box, nil for an empty set.
func (p *Points) Bounds() *r3.Box {
	if len(p.X) == 0 {
		return nil
	}
	box := &r3.Box{Min: p.X[0], Max: p.X[0]}
	for _, x := range p.X[1:] {
		box.Min = r3.Vec{X: min(box.Min.X, x.X), Y: min(box.Min.Y, x.Y), Z: min(box.Min.Z, x.Z)}
		box.Max = r3.Vec{X: max(box.Max.X, x.X), Y: max(box.Max.Y, x.Y), Z: max(box.Max.Z, x.Z)}
	}
	return box
}

// Reset empties the set without releasing storage
func (p *Points) Reset() { p.X = p.X[:0] }
