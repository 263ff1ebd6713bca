/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Epsilon is the distance, in degrees, under which a point counts as lying on an edge. It is
// about 0.1mm on the ground, well under the precision of the grid boundaries, and well over
// the rounding error of the coordinates shared by two adjacent cells.
const Epsilon = 1e-9

// orient is positive when p is to the left of the directed line a->b.
func orient(a, b, p orb.Point) float64 {
	return (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
}

// onSegment reports whether p lies within Epsilon of the segment a-b.
func onSegment(a, b, p orb.Point) bool {
	dx, dy := b[0]-a[0], b[1]-a[1]
	l2 := dx*dx + dy*dy
	q := a
	if l2 > 0 {
		t := ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / l2
		t = math.Max(0, math.Min(1, t))
		q = orb.Point{a[0] + t*dx, a[1] + t*dy}
	}
	ex, ey := p[0]-q[0], p[1]-q[1]
	return ex*ex+ey*ey <= Epsilon*Epsilon
}

// segmentsCross reports whether a-b and c-d cross at a single point interior to both.
func segmentsCross(a, b, c, d orb.Point) bool {
	d1, d2 := orient(c, d, a), orient(c, d, b)
	d3, d4 := orient(a, b, c), orient(a, b, d)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

// segmentsIntersect reports whether a-b and c-d have any point in common, touching included.
func segmentsIntersect(a, b, c, d orb.Point) bool {
	return segmentsCross(a, b, c, d) ||
		onSegment(a, b, c) || onSegment(a, b, d) || onSegment(c, d, a) || onSegment(c, d, b)
}

// onRing reports whether p lies within Epsilon of an edge of the closed ring r.
func onRing(r orb.Ring, p orb.Point) bool {
	for i := 0; i+1 < len(r); i++ {
		if onSegment(r[i], r[i+1], p) {
			return true
		}
	}
	return false
}

// ringContains reports whether p is inside the closed ring r or on its boundary.
func ringContains(r orb.Ring, p orb.Point) bool {
	if !r.Bound().Pad(Epsilon).Contains(p) {
		return false
	}
	return onRing(r, p) || planar.RingContains(r, p)
}

// ringInterior reports whether p is strictly inside r, further than Epsilon from its edges.
func ringInterior(r orb.Ring, p orb.Point) bool {
	return !onRing(r, p) && planar.RingContains(r, p)
}

// edgesIntersect reports whether any edge of a touches or crosses any edge of b.
func edgesIntersect(a, b []orb.Point) bool {
	for i := 0; i+1 < len(a); i++ {
		for j := 0; j+1 < len(b); j++ {
			if segmentsIntersect(a[i], a[i+1], b[j], b[j+1]) {
				return true
			}
		}
	}
	return false
}

// edgesCross reports whether any edge of a properly crosses any edge of b.
func edgesCross(a, b []orb.Point) bool {
	for i := 0; i+1 < len(a); i++ {
		for j := 0; j+1 < len(b); j++ {
			if segmentsCross(a[i], a[i+1], b[j], b[j+1]) {
				return true
			}
		}
	}
	return false
}

// boundRing returns the closed ring of the corners of b.
func boundRing(b orb.Bound) orb.Ring {
	return orb.Ring{
		b.Min,
		{b.Max[0], b.Min[1]},
		b.Max,
		{b.Min[0], b.Max[1]},
		b.Min,
	}
}

// ringIntersectsBound reports whether the closed ring r and the box b share a point. Touching
// counts, within Epsilon.
func ringIntersectsBound(r orb.Ring, b orb.Bound) bool {
	b = b.Pad(Epsilon)
	if !r.Bound().Intersects(b) {
		return false
	}
	for _, p := range r {
		if b.Contains(p) {
			return true
		}
	}
	box := boundRing(b)
	for _, p := range box[:4] {
		if ringContains(r, p) {
			return true
		}
	}
	return edgesIntersect(r, box)
}

// signedArea uses the Shoelace formula, https://en.wikipedia.org/wiki/Shoelace_formula.
// It is positive for counter-clockwise rings.
func signedArea(r orb.Ring) float64 {
	var a float64
	n := len(r)
	for i := 0; i < n; i++ {
		p1 := r[i]
		p2 := r[(i+1)%n]
		a += (p1[0] * p2[1]) - (p2[0] * p1[1])
	}
	return a / 2
}

// closeRing drops consecutive duplicates (within Epsilon) and closes the ring.
func closeRing(pts []orb.Point) orb.Ring {
	r := make(orb.Ring, 0, len(pts)+1)
	for _, p := range pts {
		if len(r) > 0 && samePoint(r[len(r)-1], p) {
			continue
		}
		r = append(r, p)
	}
	for len(r) > 1 && samePoint(r[0], r[len(r)-1]) {
		r = r[:len(r)-1]
	}
	if len(r) > 0 {
		r = append(r, r[0])
	}
	return r
}

func samePoint(a, b orb.Point) bool {
	return math.Abs(a[0]-b[0]) <= Epsilon && math.Abs(a[1]-b[1]) <= Epsilon
}

// degenerate reports whether a closed ring encloses no area.
func degenerate(r orb.Ring) bool {
	return len(r) < 4 || math.Abs(signedArea(r)) <= Epsilon*Epsilon
}

// clipLng clips the open ring pts to lo <= x <= hi using Sutherland-Hodgman. The strip is
// convex, so the output is a single ring, possibly with zero-width bridges on concave input.
func clipLng(pts []orb.Point, lo, hi float64) []orb.Point {
	pts = clipHalf(pts, lo, func(p orb.Point) bool { return p[0] >= lo })
	return clipHalf(pts, hi, func(p orb.Point) bool { return p[0] <= hi })
}

func clipHalf(pts []orb.Point, x float64, inside func(orb.Point) bool) []orb.Point {
	out := make([]orb.Point, 0, len(pts)+2)
	for i, cur := range pts {
		prev := pts[(i+len(pts)-1)%len(pts)]
		cin, pin := inside(cur), inside(prev)
		switch {
		case cin && !pin:
			out = append(out, crossLng(prev, cur, x), cur)
		case cin:
			out = append(out, cur)
		case pin:
			out = append(out, crossLng(prev, cur, x))
		}
	}
	return out
}

// crossLng returns the point of a-b at longitude x. a and b lie on opposite sides of x.
func crossLng(a, b orb.Point, x float64) orb.Point {
	t := (x - a[0]) / (b[0] - a[0])
	return orb.Point{x, a[1] + t*(b[1]-a[1])}
}
