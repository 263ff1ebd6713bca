/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package geo

import (
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// BoundingBox is an axis aligned box in degrees. A box whose MinLng is greater than its
// MaxLng wraps across the antimeridian.
type BoundingBox struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// ParseBoundingBox parses "minLng,minLat,maxLng,maxLat", the GeoJSON bbox order.
func ParseBoundingBox(s string) (BoundingBox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return BoundingBox{}, errors.Wrapf(ErrInvalidBounds,
			"expected minLng,minLat,maxLng,maxLat, got %q", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return BoundingBox{}, errors.Wrapf(ErrInvalidBounds, "while parsing %q: %v", p, err)
		}
		v[i] = f
	}
	b := BoundingBox{MinLng: v[0], MinLat: v[1], MaxLng: v[2], MaxLat: v[3]}
	return b, b.Validate()
}

// Validate checks that the box describes a region of the globe.
func (b BoundingBox) Validate() error {
	for _, f := range []float64{b.MinLat, b.MaxLat, b.MinLng, b.MaxLng} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return errors.Wrapf(ErrInvalidBounds, "%+v has a non finite coordinate", b)
		}
	}
	switch {
	case b.MinLat < -90 || b.MaxLat > 90:
		return errors.Wrapf(ErrInvalidBounds, "latitudes of %+v are outside [-90, 90]", b)
	case b.MinLat > b.MaxLat:
		return errors.Wrapf(ErrInvalidBounds, "min latitude of %+v is above max latitude", b)
	case b.MinLng < -180 || b.MaxLng > 180 || b.MinLng > 180 || b.MaxLng < -180:
		return errors.Wrapf(ErrInvalidBounds, "longitudes of %+v are outside [-180, 180]", b)
	}
	return nil
}

// CrossesAntimeridian reports whether the box wraps across longitude 180.
func (b BoundingBox) CrossesAntimeridian() bool {
	return b.MinLng > b.MaxLng
}

// Split returns the box as non-wrapping orb.Bounds. A wrapping box gives two bounds, one each
// side of the antimeridian. A side with no width, like [180, 180], is dropped.
func (b BoundingBox) Split() []orb.Bound {
	if !b.CrossesAntimeridian() {
		return []orb.Bound{{
			Min: orb.Point{b.MinLng, b.MinLat},
			Max: orb.Point{b.MaxLng, b.MaxLat},
		}}
	}
	var out []orb.Bound
	if b.MinLng < 180 {
		out = append(out, orb.Bound{
			Min: orb.Point{b.MinLng, b.MinLat},
			Max: orb.Point{180, b.MaxLat},
		})
	}
	if b.MaxLng > -180 {
		out = append(out, orb.Bound{
			Min: orb.Point{-180, b.MinLat},
			Max: orb.Point{b.MaxLng, b.MaxLat},
		})
	}
	return out
}
