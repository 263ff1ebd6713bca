/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package types

import (
	"fmt"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// EarthRadiusMeters is the radius of the earth in meters, in a spherical earth model.
const EarthRadiusMeters = 1000 * 6371

const (
	km  = 1000
	km2 = km * km
	cm2 = 100 * 100
)

// Length is a length on earth, in meters.
type Length float64

// Area is an area on earth, in square meters.
type Area float64

// EarthDistance converts an angle at the centre of the earth to a distance on its surface.
func EarthDistance(angle s1.Angle) Length {
	return Length(angle.Radians() * EarthRadiusMeters)
}

// EarthArea converts an area on the unit sphere to an area on earth.
func EarthArea(a float64) Area {
	return Area(a * EarthRadiusMeters * EarthRadiusMeters)
}

// Distance is the great circle distance between two points given in degrees.
func Distance(lat1, lng1, lat2, lng2 float64) Length {
	a := s2.LatLngFromDegrees(lat1, lng1)
	b := s2.LatLngFromDegrees(lat2, lng2)
	return EarthDistance(a.Distance(b))
}

func (l Length) String() string {
	switch {
	case l > km:
		return fmt.Sprintf("%.3f km", l/km)
	case l < 1:
		return fmt.Sprintf("%.3f cm", l*100)
	}
	return fmt.Sprintf("%.3f m", l)
}

func (a Area) String() string {
	switch {
	case a > km2:
		return fmt.Sprintf("%.3f km^2", a/km2)
	case a < 1:
		return fmt.Sprintf("%.3f cm^2", a*cm2)
	}
	return fmt.Sprintf("%.3f m^2", a)
}
