/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package geo

import (
	"github.com/golang/glog"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// Tiler decides which cells at a fixed resolution a query visits. A bounded tiler restricts
// them to the cells intersecting a bounding box. A Tiler is read-only once built and safe
// for concurrent use.
type Tiler struct {
	proj    *Projector
	res     int
	limit   int
	bounded bool
	bounds  []orb.Bound
}

// NewTiler returns a Tiler over the whole globe. A positive limit caps the number of cells
// returned by Cells.
func NewTiler(proj *Projector, res, limit int) (*Tiler, error) {
	if err := validResolution(res); err != nil {
		return nil, err
	}
	return &Tiler{proj: proj, res: res, limit: limit}, nil
}

// NewBoundedTiler returns a Tiler visiting only the cells that intersect box.
func NewBoundedTiler(proj *Projector, res int, box BoundingBox, limit int) (*Tiler, error) {
	if err := box.Validate(); err != nil {
		return nil, err
	}
	t, err := NewTiler(proj, res, limit)
	if err != nil {
		return nil, err
	}
	t.bounded = true
	t.bounds = box.Split()
	return t, nil
}

// Resolution returns the resolution the tiler produces cells at.
func (t *Tiler) Resolution() int {
	return t.res
}

// IntersectsBounds reports whether c intersects the tiler's bounding box. Cells touching an
// edge of the box intersect it. An unbounded tiler accepts every valid cell.
func (t *Tiler) IntersectsBounds(c CellID) (bool, error) {
	p, err := t.proj.Project(c)
	if err != nil {
		return false, err
	}
	return t.inBounds(p), nil
}

func (t *Tiler) inBounds(p *CartesianPolygon) bool {
	if !t.bounded {
		return true
	}
	for _, b := range t.bounds {
		if p.IntersectsBound(b) {
			return true
		}
	}
	return false
}

// accepts reports whether c is a bucket candidate for shape.
func (t *Tiler) accepts(shape Shape, c CellID) (bool, error) {
	p, err := t.proj.Project(c)
	if err != nil {
		return false, err
	}
	return t.inBounds(p) && IsCandidate(Relate(shape, p)), nil
}

// Cells returns, in ascending order, the cells at the tiler resolution that the shape is not
// disjoint from and that intersect the bounds. The hierarchy is walked from the base cells,
// descending only into cells the shape touches. Children of a cell don't nest exactly inside
// it, so the ring of every child is visited too.
func (t *Tiler) Cells(shape Shape) ([]CellID, error) {
	grid := t.proj.Grid()
	level := grid.BaseCells()
	for res := 0; ; res++ {
		var keep []CellID
		for _, c := range level {
			ok, err := t.accepts(shape, c)
			if err != nil {
				return nil, errors.Wrapf(err, "while tiling at resolution %d", res)
			}
			if ok {
				keep = append(keep, c)
			}
		}
		glog.V(3).Infof("Tiling kept %d of %d cells at resolution %d", len(keep), len(level), res)
		if res == t.res {
			if t.limit > 0 && len(keep) > t.limit {
				return nil, errors.Wrapf(ErrTooManyCells, "%d cells at resolution %d, limit is %d",
					len(keep), res, t.limit)
			}
			return keep, nil
		}

		next := make(map[CellID]struct{}, 7*len(keep))
		for _, c := range keep {
			for _, child := range grid.Children(c) {
				next[child] = struct{}{}
				for _, n := range grid.Ring(child) {
					next[n] = struct{}{}
				}
			}
		}
		level = make([]CellID, 0, len(next))
		for c := range next {
			level = append(level, c)
		}
		sortCells(level)
	}
}

// Count returns the number of cells Cells would return.
func (t *Tiler) Count(shape Shape) (int, error) {
	cells, err := t.Cells(shape)
	if err != nil {
		return 0, err
	}
	return len(cells), nil
}
