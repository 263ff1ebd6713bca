/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package geo

import (
	"math"

	"github.com/golang/glog"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"

	"github.com/hypermodeinc/hexgrid/types"
	"github.com/hypermodeinc/hexgrid/x"
)

// Resolver finds the cell owning a point. The grid only gives a best guess near cell
// boundaries, so the guess is checked against its projected polygon and, failing that,
// against the polygons of its ring.
type Resolver struct {
	proj *Projector
}

// NewResolver returns a Resolver using proj for cell geometry.
func NewResolver(proj *Projector) *Resolver {
	return &Resolver{proj: proj}
}

// Resolve returns the cell at res whose polygon contains the point. Points on an edge shared
// by several cells always resolve to the same one: the candidate if it matches, otherwise
// the first matching neighbour in ring order.
func (r *Resolver) Resolve(lat, lng float64, res int) (CellID, error) {
	if err := validResolution(res); err != nil {
		return 0, err
	}
	if err := validPoint(lat, lng); err != nil {
		return 0, err
	}
	lng = normalizeLng(lng)
	pt := orb.Point{lng, lat}
	x.NumResolved.Inc()

	grid := r.proj.Grid()
	candidate := grid.CellAt(lat, lng, res)
	poly, err := r.proj.Project(candidate)
	if err != nil {
		return 0, errors.Wrapf(err, "while projecting candidate for (%v, %v)", lat, lng)
	}
	if poly.ContainsPoint(pt) {
		return candidate, nil
	}

	ring := grid.Ring(candidate)
	x.AssertTruef(len(ring) > 0, "Cell %s has no neighbours", candidate)
	for _, n := range ring {
		poly, err := r.proj.Project(n)
		if err != nil {
			return 0, errors.Wrapf(err, "while projecting neighbour of %s", candidate)
		}
		if poly.ContainsPoint(pt) {
			x.NumRingFallbacks.Inc()
			glog.V(2).Infof("Point (%v, %v) at resolution %d resolved to %s instead of %s",
				lat, lng, res, n, candidate)
			return n, nil
		}
	}

	x.NumResolveFailures.Inc()
	center := grid.Center(candidate)
	rerr := &ResolutionError{
		Lat:        lat,
		Lng:        lng,
		Resolution: res,
		Candidate:  candidate,
		Tried:      ring,
		Distance:   types.Distance(lat, lng, center[1], center[0]),
	}
	glog.Errorf("%v", rerr)
	return 0, errors.WithStack(rerr)
}

// Key returns the bucket key of the point, the text form of the resolved cell.
func (r *Resolver) Key(lat, lng float64, res int) (string, error) {
	c, err := r.Resolve(lat, lng, res)
	if err != nil {
		return "", err
	}
	return c.String(), nil
}

func validPoint(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lng, 0) || lat < -90 || lat > 90 {
		return errors.Wrapf(ErrInvalidPoint, "(%v, %v)", lat, lng)
	}
	return nil
}
