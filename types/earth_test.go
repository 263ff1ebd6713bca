/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package types

import (
	"testing"

	"github.com/golang/geo/s1"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	// One degree of a great circle.
	require.InDelta(t, 111194.9, float64(Distance(0, 0, 0, 1)), 0.1)
	require.InDelta(t, 111194.9, float64(Distance(0, 179.5, 0, -179.5)), 0.1)
	require.Zero(t, float64(Distance(45, 10, 45, 10)))
}

func TestEarthDistance(t *testing.T) {
	require.InDelta(t, EarthRadiusMeters, float64(EarthDistance(s1.Angle(1))), 1e-6)
}

func TestEarthArea(t *testing.T) {
	// The unit sphere has an area of 4 pi.
	require.InDelta(t, 5.100644e14, float64(EarthArea(4*3.141592653589793)), 1e9)
}

func TestLengthString(t *testing.T) {
	require.Equal(t, "1.500 km", Length(1500).String())
	require.Equal(t, "12.000 m", Length(12).String())
	require.Equal(t, "50.000 cm", Length(0.5).String())
}

func TestAreaString(t *testing.T) {
	require.Equal(t, "252.900 km^2", Area(252.9e6).String())
	require.Equal(t, "4.000 m^2", Area(4).String())
	require.Equal(t, "2500.000 cm^2", Area(0.25).String())
}
