/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package geo

import (
	"github.com/paulmach/orb"
)

// Relation is the outcome of comparing a shape with a cell, from the shape's point of view.
type Relation byte

const (
	// Disjoint means the shape and the cell have no point in common.
	Disjoint Relation = iota
	// Intersects means they overlap, but neither covers the other.
	Intersects
	// Within means the shape lies entirely inside the cell.
	Within
	// Contains means the shape covers the whole cell.
	Contains
)

func (r Relation) String() string {
	switch r {
	case Disjoint:
		return "disjoint"
	case Intersects:
		return "intersects"
	case Within:
		return "within"
	case Contains:
		return "contains"
	}
	return "unknown"
}

// IsCandidate reports whether a shape with this relation contributes to the cell's bucket.
func IsCandidate(r Relation) bool {
	return r != Disjoint
}

// Shape is a value that can be bucketed into cells.
type Shape interface {
	// Relate compares the shape with a projected cell.
	Relate(p *CartesianPolygon) Relation
	// Bound returns the {lng, lat} bounding box of the shape.
	Bound() orb.Bound
}

// Relate compares shape with the projected polygon of a cell.
func Relate(shape Shape, p *CartesianPolygon) Relation {
	if !p.Bound().Pad(Epsilon).Intersects(shape.Bound()) {
		return Disjoint
	}
	return shape.Relate(p)
}

// Relator relates shapes with cells, projecting the cells as needed.
type Relator struct {
	proj *Projector
}

// NewRelator returns a Relator using proj for cell geometry.
func NewRelator(proj *Projector) *Relator {
	return &Relator{proj: proj}
}

// RelateCell compares shape with cell c.
func (r *Relator) RelateCell(shape Shape, c CellID) (Relation, error) {
	p, err := r.proj.Project(c)
	if err != nil {
		return Disjoint, err
	}
	return Relate(shape, p), nil
}
