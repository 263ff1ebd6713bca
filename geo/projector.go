/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package geo

import (
	"math"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/dgraph-io/ristretto/v2/z"
	"github.com/golang/glog"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"

	"github.com/hypermodeinc/hexgrid/x"
)

// ProjectorDefaults is the default superflag of the projection cache.
const ProjectorDefaults = `size=65536; counters=655360; buffer-items=64;`

// ProjectorOptions configures the cache of projected cells.
type ProjectorOptions struct {
	// CacheSize is the maximum number of polygons kept in memory. Zero disables caching.
	CacheSize int64
	// NumCounters is the number of keys tracked for admission. Ten times CacheSize is advised.
	NumCounters int64
	BufferItems int64
}

// ParseProjectorOptions reads the options from a superflag like "size=1000; counters=10000;".
func ParseProjectorOptions(flag string) ProjectorOptions {
	sf := z.NewSuperFlag(flag).MergeAndCheckDefault(ProjectorDefaults)
	return ProjectorOptions{
		CacheSize:   sf.GetInt64("size"),
		NumCounters: sf.GetInt64("counters"),
		BufferItems: sf.GetInt64("buffer-items"),
	}
}

// Projector turns cells into their CartesianPolygon. It is safe for concurrent use.
type Projector struct {
	grid  Grid
	cache *ristretto.Cache[uint64, *CartesianPolygon]
}

// NewProjector returns a Projector over grid.
func NewProjector(grid Grid, opts ProjectorOptions) (*Projector, error) {
	p := &Projector{grid: grid}
	if opts.CacheSize <= 0 {
		return p, nil
	}
	counters := opts.NumCounters
	if counters <= 0 {
		counters = 10 * opts.CacheSize
	}
	buffer := opts.BufferItems
	if buffer <= 0 {
		buffer = 64
	}
	cache, err := ristretto.NewCache[uint64, *CartesianPolygon](
		&ristretto.Config[uint64, *CartesianPolygon]{
			NumCounters: counters,
			MaxCost:     opts.CacheSize,
			BufferItems: buffer,
			// Every polygon costs 1, so MaxCost bounds the number of entries.
			IgnoreInternalCost: true,
		})
	if err != nil {
		return nil, errors.Wrapf(err, "while creating projection cache")
	}
	p.cache = cache
	return p, nil
}

// Grid returns the grid the projector works on.
func (p *Projector) Grid() Grid {
	return p.grid
}

// Close releases the cache.
func (p *Projector) Close() {
	if p.cache != nil {
		p.cache.Close()
	}
}

// Project returns the planar polygon of c. It only fails when c is not a valid cell.
func (p *Projector) Project(c CellID) (*CartesianPolygon, error) {
	if !p.grid.IsValid(c) {
		return nil, errors.Wrapf(ErrInvalidCell, "cell %s", c)
	}
	if p.cache != nil {
		if poly, ok := p.cache.Get(uint64(c)); ok {
			x.ProjectionCacheHits.Inc()
			return poly, nil
		}
	}
	poly := p.project(c)
	x.NumProjections.Inc()
	if p.cache != nil {
		p.cache.Set(uint64(c), poly, 1)
	}
	return poly, nil
}

func (p *Projector) project(c CellID) *CartesianPolygon {
	pts := unwrapLng(p.grid.Boundary(c))
	res := p.grid.Resolution(c)
	switch c {
	case p.grid.CellAt(90, 0, res):
		pts = closePole(pts, 90)
	case p.grid.CellAt(-90, 0, res):
		pts = closePole(pts, -90)
	}
	return newCartesianPolygon(c, splitLng(c, pts))
}

// nearLng returns the longitude equivalent to lng that is closest to ref.
func nearLng(ref, lng float64) float64 {
	for lng-ref > 180 {
		lng -= 360
	}
	for lng-ref < -180 {
		lng += 360
	}
	return lng
}

// normalizeLng maps lng into [-180, 180]. Both ends are kept as given.
func normalizeLng(lng float64) float64 {
	if lng >= -180 && lng <= 180 {
		return lng
	}
	lng = math.Mod(lng+180, 360)
	if lng < 0 {
		lng += 360
	}
	return lng - 180
}

// unwrapLng shifts longitudes so consecutive vertices are never more than 180 degrees apart.
// The result may leave [-180, 180].
func unwrapLng(pts []orb.Point) []orb.Point {
	out := make([]orb.Point, len(pts))
	for i, pt := range pts {
		if i > 0 {
			pt[0] = nearLng(out[i-1][0], pt[0])
		}
		out[i] = pt
	}
	return out
}

// closePole closes an unwrapped ring around a pole. Such a ring ends 360 degrees away from
// where it started, so the gap is bridged along the pole latitude.
func closePole(pts []orb.Point, lat float64) []orb.Point {
	if len(pts) == 0 {
		return pts
	}
	first, last := pts[0], pts[len(pts)-1]
	end := nearLng(last[0], first[0])
	if math.Abs(end-first[0]) < 180 {
		return pts
	}
	return append(pts,
		orb.Point{end, first[1]},
		orb.Point{end, lat},
		orb.Point{first[0], lat},
	)
}

// splitLng cuts an unwrapped ring at every antimeridian it spans and moves each piece back
// into [-180, 180].
func splitLng(c CellID, pts []orb.Point) []orb.Ring {
	if len(pts) == 0 {
		return nil
	}
	if lo, hi := lngRange(pts); lo >= -180 && hi <= 180 {
		return []orb.Ring{closeRing(pts)}
	}

	var rings []orb.Ring
	for _, shift := range lngWindows(pts) {
		r := clipWindow(pts, shift)
		if degenerate(r) {
			glog.V(3).Infof("Skipping degenerate piece of cell %s in window %v", c, shift)
			continue
		}
		rings = append(rings, r)
	}
	return rings
}

func lngRange(pts []orb.Point) (lo, hi float64) {
	lo, hi = pts[0][0], pts[0][0]
	for _, pt := range pts[1:] {
		lo = math.Min(lo, pt[0])
		hi = math.Max(hi, pt[0])
	}
	return lo, hi
}

// lngWindows returns the multiples of 360 that bring each piece of the unwrapped pts back
// into [-180, 180].
func lngWindows(pts []orb.Point) []float64 {
	lo, hi := lngRange(pts)
	var out []float64
	for w := math.Floor((lo + 180) / 360); w*360-180 < hi; w++ {
		out = append(out, w*360)
	}
	return out
}

// clipWindow returns the closed piece of pts between shift-180 and shift+180, moved back by
// shift.
func clipWindow(pts []orb.Point, shift float64) orb.Ring {
	piece := clipLng(pts, shift-180, shift+180)
	for i := range piece {
		piece[i][0] -= shift
	}
	return closeRing(piece)
}

// crossesAntimeridian reports whether the edge a-b is shorter going over the antimeridian
// than going across the plane.
func crossesAntimeridian(a, b orb.Point) bool {
	return math.Abs(b[0]-a[0]) > 180 && math.Abs(a[0]) <= 180 && math.Abs(b[0]) <= 180
}
