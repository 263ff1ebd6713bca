/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package cell

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hypermodeinc/hexgrid/geo"
)

func TestFeatureCollection(t *testing.T) {
	proj, err := geo.NewProjector(geo.H3, geo.ParseProjectorOptions("size=0;"))
	require.NoError(t, err)
	defer proj.Close()

	c := geo.H3.CellAt(45, 10, 4)
	cells := append([]geo.CellID{c}, geo.H3.Ring(c)...)
	fc, err := FeatureCollection(proj, cells)
	require.NoError(t, err)
	require.Len(t, fc.Features, 7)

	f := fc.Features[0]
	require.True(t, f.Geometry.IsMultiPolygon())
	require.Len(t, f.Geometry.MultiPolygon, 1)
	require.Equal(t, c.String(), f.Properties["cell"])
	require.Equal(t, 4, f.Properties["resolution"])
	area, ok := f.Properties["area_m2"].(float64)
	require.True(t, ok)
	require.Greater(t, area, 1e8)

	out, err := fc.MarshalJSON()
	require.NoError(t, err)
	require.Contains(t, string(out), c.String())

	_, err = FeatureCollection(proj, []geo.CellID{0})
	require.ErrorIs(t, err, geo.ErrInvalidCell)
}

func TestCoordinatesAcrossAntimeridian(t *testing.T) {
	proj, err := geo.NewProjector(geo.H3, geo.ParseProjectorOptions("size=0;"))
	require.NoError(t, err)
	defer proj.Close()

	for lat := -60.0; lat <= 60; lat += 2.5 {
		p, err := proj.Project(geo.H3.CellAt(lat, 179.999, 2))
		require.NoError(t, err)
		if len(p.Rings) != 2 {
			continue
		}
		coords := coordinates(p)
		mp := p.Polygons()
		require.Len(t, coords, 2)
		for i, poly := range mp {
			require.Len(t, coords[i], 1)
			require.Len(t, coords[i][0], len(poly[0]))
			for j, pt := range poly[0] {
				require.Equal(t, []float64{pt[0], pt[1]}, coords[i][0][j])
			}
		}
		return
	}
	t.Fatal("No cell crossing the antimeridian at resolution 2")
}
