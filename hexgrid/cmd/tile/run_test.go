/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package tile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	geojson "github.com/paulmach/go.geojson"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/hypermodeinc/hexgrid/geo"
)

func setConf(t *testing.T, kv map[string]interface{}) {
	conf := viper.New()
	for k, v := range kv {
		conf.Set(k, v)
	}
	Tile.Conf = conf
	t.Cleanup(func() { Tile.Conf = nil })
}

// boxInCell returns a GeoJSON polygon well inside the cell at (lat, lng), and that cell.
func boxInCell(lat, lng float64, res int) (string, geo.CellID) {
	c := geo.H3.CellAt(lat, lng, res)
	center := geo.H3.Center(c)
	x, y, d := center[0], center[1], 0.001
	return fmt.Sprintf(`{"type":"Polygon","coordinates":[[[%v,%v],[%v,%v],[%v,%v],[%v,%v],[%v,%v]]]}`,
		x-d, y-d, x+d, y-d, x+d, y+d, x-d, y+d, x-d, y-d), c
}

func TestRunQueryTypes(t *testing.T) {
	shape, c := boxInCell(45.5, 10.3, 5)
	tests := []struct {
		qt   string
		want []string
	}{
		{"", []string{c.String()}},
		{"intersects", []string{c.String()}},
		{"within", []string{c.String()}},
		{"contains", nil},
	}
	for _, tc := range tests {
		t.Run(tc.qt, func(t *testing.T) {
			setConf(t, map[string]interface{}{
				"geojson":    shape,
				"resolution": 5,
				"type":       tc.qt,
			})
			var buf bytes.Buffer
			require.NoError(t, run(&buf))
			got := strings.Fields(buf.String())
			if tc.want == nil {
				require.Empty(t, got)
				return
			}
			require.Equal(t, tc.want, got)
		})
	}

	setConf(t, map[string]interface{}{"geojson": shape, "type": "nearest"})
	require.Error(t, run(&bytes.Buffer{}))
}

func TestRunFeatures(t *testing.T) {
	shape, c := boxInCell(-33.8688, 151.2093, 4)
	setConf(t, map[string]interface{}{
		"geojson":    shape,
		"resolution": 4,
		"features":   true,
	})
	var buf bytes.Buffer
	require.NoError(t, run(&buf))

	fc, err := geojson.UnmarshalFeatureCollection(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	require.Equal(t, c.String(), fc.Features[0].Properties["cell"])
	require.True(t, fc.Features[0].Geometry.IsMultiPolygon())
}

func TestRunShapeFile(t *testing.T) {
	shape, c := boxInCell(37.42, -122.08, 6)
	path := filepath.Join(t.TempDir(), "shape.json")
	require.NoError(t, os.WriteFile(path, []byte(shape), 0644))

	setConf(t, map[string]interface{}{"shape": path, "resolution": 6})
	var buf bytes.Buffer
	require.NoError(t, run(&buf))
	require.Equal(t, []string{c.String()}, strings.Fields(buf.String()))

	// A box away from the shape leaves no cell.
	setConf(t, map[string]interface{}{"shape": path, "resolution": 6, "bbox": "0,0,10,10"})
	buf.Reset()
	require.NoError(t, run(&buf))
	require.Empty(t, strings.TrimSpace(buf.String()))
}

func TestRunErrors(t *testing.T) {
	setConf(t, map[string]interface{}{})
	require.ErrorContains(t, run(&bytes.Buffer{}), "One of --shape or --geojson is required")

	setConf(t, map[string]interface{}{"shape": filepath.Join(t.TempDir(), "missing.json")})
	require.ErrorContains(t, run(&bytes.Buffer{}), "while reading shape")

	setConf(t, map[string]interface{}{"geojson": "not a shape"})
	require.ErrorContains(t, run(&bytes.Buffer{}), "while parsing shape")

	shape, _ := boxInCell(45.5, 10.3, 5)
	setConf(t, map[string]interface{}{"geojson": shape, "resolution": 16})
	require.ErrorIs(t, run(&bytes.Buffer{}), geo.ErrInvalidResolution)

	setConf(t, map[string]interface{}{"geojson": shape, "bbox": "1,2,3"})
	require.ErrorIs(t, run(&bytes.Buffer{}), geo.ErrInvalidBounds)

	setConf(t, map[string]interface{}{"geojson": shape, "resolution": 5, "limit": 0})
	require.NoError(t, run(&bytes.Buffer{}))
}
