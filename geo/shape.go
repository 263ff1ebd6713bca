/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/twpayne/go-geom"

	"github.com/hypermodeinc/hexgrid/types"
)

// GeomShape is a Shape over a go-geom geometry. Coordinates are read as {lng, lat} degrees,
// the GeoJSON order, and edges are straight lines in that plane, like the cell polygons. An
// edge between vertices more than 180 degrees of longitude apart goes over the antimeridian,
// so lines and polygons with such edges are split there into pieces on either side.
type GeomShape struct {
	points []orb.Point
	lines  []orb.LineString
	polys  []orb.Polygon
	bound  orb.Bound
	empty  bool
}

// NewGeomShape converts a point, line string, polygon, multi geometry or geometry collection.
// Only the first two dimensions of the coordinates are used.
func NewGeomShape(g geom.T) (*GeomShape, error) {
	if g == nil {
		return nil, errors.Errorf("Cannot build a shape from a nil geometry")
	}
	s := &GeomShape{}
	if err := s.add(g); err != nil {
		return nil, err
	}
	s.extend()
	if s.empty {
		return nil, errors.Errorf("Cannot build a shape from an empty %T", g)
	}
	return s, nil
}

// ShapeFromGeo converts a stored geo value.
func ShapeFromGeo(g types.Geo) (*GeomShape, error) {
	return NewGeomShape(g.T)
}

func (s *GeomShape) add(g geom.T) error {
	if _, ok := g.(*geom.GeometryCollection); !ok && g.Stride() < 2 {
		return errors.Errorf("Shapes need at least 2D co-ordinates, got stride %d", g.Stride())
	}
	switch v := g.(type) {
	case *geom.Point:
		if len(v.FlatCoords()) == 0 {
			return nil
		}
		s.points = append(s.points, pointFromCoord(v.Coords()))
	case *geom.MultiPoint:
		for i := 0; i < v.NumPoints(); i++ {
			if err := s.add(v.Point(i)); err != nil {
				return err
			}
		}
	case *geom.LineString:
		l := make(orb.LineString, 0, v.NumCoords())
		for _, c := range v.Coords() {
			l = append(l, pointFromCoord(c))
		}
		if len(l) < 2 {
			return errors.Errorf("Can't convert line string with less than 2 pts")
		}
		s.lines = append(s.lines, splitLine(l)...)
	case *geom.MultiLineString:
		for i := 0; i < v.NumLineStrings(); i++ {
			if err := s.add(v.LineString(i)); err != nil {
				return err
			}
		}
	case *geom.Polygon:
		p, err := polygonFromGeom(v)
		if err != nil {
			return err
		}
		if p == nil {
			return nil
		}
		s.polys = append(s.polys, splitPolygon(p)...)
	case *geom.MultiPolygon:
		for i := 0; i < v.NumPolygons(); i++ {
			if err := s.add(v.Polygon(i)); err != nil {
				return err
			}
		}
	case *geom.GeometryCollection:
		for _, sub := range v.Geoms() {
			if err := s.add(sub); err != nil {
				return err
			}
		}
	default:
		return errors.Errorf("Cannot relate geometry of type %T", v)
	}
	return nil
}

// extend computes the bound once every component was added.
func (s *GeomShape) extend() {
	var b orb.Bound
	first := true
	grow := func(pb orb.Bound) {
		if first {
			b, first = pb, false
			return
		}
		b = b.Union(pb)
	}
	for _, p := range s.points {
		grow(p.Bound())
	}
	for _, l := range s.lines {
		grow(l.Bound())
	}
	for _, p := range s.polys {
		grow(p.Bound())
	}
	s.bound = b
	s.empty = first
}

func pointFromCoord(c geom.Coord) orb.Point {
	return orb.Point{c.X(), c.Y()}
}

// polygonFromGeom keeps the holes, unlike an s2 loop. The outer ring comes first.
func polygonFromGeom(v *geom.Polygon) (orb.Polygon, error) {
	if v.NumLinearRings() == 0 {
		return nil, nil
	}
	p := make(orb.Polygon, 0, v.NumLinearRings())
	for i := 0; i < v.NumLinearRings(); i++ {
		lr := v.LinearRing(i)
		pts := make([]orb.Point, lr.NumCoords())
		for j := range pts {
			pts[j] = pointFromCoord(lr.Coord(j))
		}
		r := closeRing(pts)
		if len(r) < 4 {
			return nil, errors.Errorf("Can't convert ring with less than 4 pts")
		}
		p = append(p, r)
	}
	return p, nil
}

// splitLine cuts l where it goes over the antimeridian. The pieces meet at longitudes 180 and
// -180, on the same latitude.
func splitLine(l orb.LineString) []orb.LineString {
	var out []orb.LineString
	cur := orb.LineString{l[0]}
	for _, b := range l[1:] {
		a := cur[len(cur)-1]
		if !crossesAntimeridian(a, b) {
			cur = append(cur, b)
			continue
		}
		seam := math.Copysign(180, a[0])
		far := orb.Point{nearLng(a[0], b[0]), b[1]}
		if far[0] == seam {
			// b is on the seam itself, keep it on the side of a.
			cur = append(cur, far)
			continue
		}
		cut := a
		if a[0] != seam {
			cut = crossLng(a, far, seam)
			cur = append(cur, cut)
		}
		if len(cur) > 1 {
			out = append(out, cur)
		}
		cur = orb.LineString{{-seam, cut[1]}, b}
	}
	if len(cur) > 1 {
		out = append(out, cur)
	}
	return out
}

// splitPolygon cuts p into one polygon per side of the antimeridian when an edge of any of
// its rings goes over it. Holes follow the outer ring they belong to.
func splitPolygon(p orb.Polygon) []orb.Polygon {
	crosses := false
	for _, r := range p {
		for i := 0; i+1 < len(r) && !crosses; i++ {
			crosses = crossesAntimeridian(r[i], r[i+1])
		}
	}
	if !crosses {
		return []orb.Polygon{p}
	}

	outer := unwrapLng(p[0])
	holes := make([][]orb.Point, 0, len(p)-1)
	for _, h := range p[1:] {
		u := unwrapLng(h)
		d := nearLng(outer[0][0], u[0][0]) - u[0][0]
		for i := range u {
			u[i][0] += d
		}
		holes = append(holes, u)
	}

	var out []orb.Polygon
	for _, shift := range lngWindows(outer) {
		r := clipWindow(outer, shift)
		if degenerate(r) {
			continue
		}
		piece := orb.Polygon{r}
		for _, h := range holes {
			if hr := clipWindow(h, shift); !degenerate(hr) {
				piece = append(piece, hr)
			}
		}
		out = append(out, piece)
	}
	return out
}

// Bound implements Shape.
func (s *GeomShape) Bound() orb.Bound {
	return s.bound
}

// Relate implements Shape. Every component is compared with every ring of the cell.
func (s *GeomShape) Relate(cell *CartesianPolygon) Relation {
	within, touches := true, false
	for _, p := range s.points {
		in := cell.ContainsPoint(p)
		within = within && in
		touches = touches || in
	}
	for _, l := range s.lines {
		in, t := relateComponent(cell, l, lineInRing, lineTouchesRing)
		within = within && in
		touches = touches || t
	}
	for _, p := range s.polys {
		in, t := relateComponent(cell, p, polyInRing, polyTouchesRing)
		within = within && in
		touches = touches || t
	}
	switch {
	case !touches:
		return Disjoint
	case within:
		return Within
	case s.covers(cell):
		return Contains
	}
	return Intersects
}

func relateComponent[T any](cell *CartesianPolygon, c T,
	in func(T, orb.Ring) bool, touches func(T, orb.Ring) bool) (bool, bool) {

	touched := false
	for _, r := range cell.Rings {
		if !touches(c, r) {
			continue
		}
		if in(c, r) {
			return true, true
		}
		touched = true
	}
	return false, touched
}

// covers reports whether the polygons of the shape cover every ring of the cell.
func (s *GeomShape) covers(cell *CartesianPolygon) bool {
	if len(s.polys) == 0 || len(cell.Rings) == 0 {
		return false
	}
	for _, r := range cell.Rings {
		covered := false
		for _, p := range s.polys {
			if polyCoversRing(p, r) {
				covered = true
				break
			}
		}
		if !covered {
			return false
		}
	}
	return true
}

func lineTouchesRing(l orb.LineString, r orb.Ring) bool {
	if !l.Bound().Intersects(r.Bound().Pad(Epsilon)) {
		return false
	}
	for _, p := range l {
		if ringContains(r, p) {
			return true
		}
	}
	return edgesIntersect(l, r)
}

func lineInRing(l orb.LineString, r orb.Ring) bool {
	for i, p := range l {
		if !ringContains(r, p) {
			return false
		}
		// A segment with both ends on the boundary of a concave ring may still leave it.
		if i > 0 && !ringContains(r, orb.Point{(l[i-1][0]+p[0])/2, (l[i-1][1]+p[1])/2}) {
			return false
		}
	}
	return !edgesCross(l, r)
}

// polygonContains reports whether pt is in the outer ring of p and not strictly inside a hole.
func polygonContains(p orb.Polygon, pt orb.Point) bool {
	if !ringContains(p[0], pt) {
		return false
	}
	for _, h := range p[1:] {
		if ringInterior(h, pt) {
			return false
		}
	}
	return true
}

func polyTouchesRing(p orb.Polygon, r orb.Ring) bool {
	if !p.Bound().Intersects(r.Bound().Pad(Epsilon)) {
		return false
	}
	for _, pr := range p {
		if edgesIntersect(pr, r) {
			return true
		}
	}
	// With no edges in common one ring is inside the other, or they are apart.
	return polygonContains(p, r[0]) || ringContains(r, p[0][0])
}

func polyInRing(p orb.Polygon, r orb.Ring) bool {
	for _, pt := range p[0] {
		if !ringContains(r, pt) {
			return false
		}
	}
	return !edgesCross(p[0], r)
}

func polyCoversRing(p orb.Polygon, r orb.Ring) bool {
	outer := p[0]
	for _, pt := range r {
		if !polygonContains(p, pt) {
			return false
		}
	}
	if edgesCross(outer, r) {
		return false
	}
	for _, pt := range outer {
		if ringInterior(r, pt) {
			return false
		}
	}
	for _, h := range p[1:] {
		if edgesCross(h, r) {
			return false
		}
		for _, pt := range h {
			if ringInterior(r, pt) {
				return false
			}
		}
	}
	return true
}
