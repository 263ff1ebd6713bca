/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package geo

import (
	"github.com/paulmach/orb"
)

// CartesianPolygon is the planar form of a cell: one or more closed, simple rings in
// {lng, lat} degrees whose union approximates the cell. Cells crossing the antimeridian are
// split into one ring per side, and cells containing a pole are closed along the pole
// latitude. A CartesianPolygon is never mutated once built, so it can be shared freely.
type CartesianPolygon struct {
	Cell  CellID
	Rings []orb.Ring

	bound orb.Bound
}

func newCartesianPolygon(c CellID, rings []orb.Ring) *CartesianPolygon {
	p := &CartesianPolygon{Cell: c, Rings: rings}
	for i, r := range rings {
		if i == 0 {
			p.bound = r.Bound()
			continue
		}
		p.bound = p.bound.Union(r.Bound())
	}
	return p
}

// Bound returns the bounding box of all the rings.
func (p *CartesianPolygon) Bound() orb.Bound {
	return p.bound
}

// ContainsPoint reports whether pt, given as {lng, lat}, is inside any ring or within
// Epsilon of its boundary.
func (p *CartesianPolygon) ContainsPoint(pt orb.Point) bool {
	if !p.bound.Pad(Epsilon).Contains(pt) {
		return false
	}
	for _, r := range p.Rings {
		if ringContains(r, pt) {
			return true
		}
	}
	return false
}

// Contains is ContainsPoint for a latitude and longitude in degrees.
func (p *CartesianPolygon) Contains(lat, lng float64) bool {
	return p.ContainsPoint(orb.Point{normalizeLng(lng), lat})
}

// IntersectsBound reports whether any ring shares a point with b. Touching counts.
func (p *CartesianPolygon) IntersectsBound(b orb.Bound) bool {
	if !p.bound.Pad(Epsilon).Intersects(b) {
		return false
	}
	for _, r := range p.Rings {
		if ringIntersectsBound(r, b) {
			return true
		}
	}
	return false
}

// Polygons returns the rings as an orb.MultiPolygon, one polygon per ring.
func (p *CartesianPolygon) Polygons() orb.MultiPolygon {
	mp := make(orb.MultiPolygon, len(p.Rings))
	for i, r := range p.Rings {
		mp[i] = orb.Polygon{r}
	}
	return mp
}
