/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package geo

import (
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"

	"github.com/hypermodeinc/hexgrid/types"
)

// Loop returns the spherical form of c, with geodesic edges between the grid vertices.
func (p *Projector) Loop(c CellID) (*s2.Loop, error) {
	if !p.grid.IsValid(c) {
		return nil, errors.Wrapf(ErrInvalidCell, "cell %s", c)
	}
	b := p.grid.Boundary(c)
	l := loopFromPoints(b, false)
	// Cells are always smaller than a hemisphere, so a loop with a bigger cap has the wrong
	// orientation.
	if l.CapBound().Radius().Degrees() > 90 {
		l = loopFromPoints(b, true)
	}
	return l, nil
}

// Area returns the area of c on a spherical earth.
func (p *Projector) Area(c CellID) (types.Area, error) {
	l, err := p.Loop(c)
	if err != nil {
		return 0, err
	}
	return types.EarthArea(l.Area()), nil
}

func pointFromLngLat(pt orb.Point) s2.Point {
	return s2.PointFromLatLng(s2.LatLngFromDegrees(pt[1], pt[0]))
}

func loopFromPoints(b []orb.Point, reverse bool) *s2.Loop {
	n := len(b)
	pts := make([]s2.Point, n)
	for i := range b {
		if reverse {
			pts[i] = pointFromLngLat(b[n-1-i])
		} else {
			pts[i] = pointFromLngLat(b[i])
		}
	}
	return s2.LoopFromPoints(pts)
}
