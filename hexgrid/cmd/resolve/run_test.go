/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package resolve

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/hypermodeinc/hexgrid/geo"
)

func setConf(t *testing.T, lat, lng float64, res int) {
	conf := viper.New()
	conf.Set("lat", lat)
	conf.Set("lng", lng)
	conf.Set("resolution", res)
	Resolve.Conf = conf
	t.Cleanup(func() { Resolve.Conf = nil })
}

func TestRun(t *testing.T) {
	proj, err := geo.NewProjector(geo.H3, geo.ParseProjectorOptions(geo.ProjectorDefaults))
	require.NoError(t, err)
	defer proj.Close()
	key, err := geo.NewResolver(proj).Key(45.5, 10.3, 5)
	require.NoError(t, err)

	setConf(t, 45.5, 10.3, 5)
	var buf bytes.Buffer
	require.NoError(t, run(&buf))
	out := buf.String()
	require.Contains(t, out, "cell       : "+key+"\n")
	require.Contains(t, out, "resolution : 5\n")
	require.Contains(t, out, " km^2\n")
}

func TestRunErrors(t *testing.T) {
	setConf(t, 100, 0, 5)
	require.ErrorIs(t, run(&bytes.Buffer{}), geo.ErrInvalidPoint)

	setConf(t, 0, 0, 16)
	require.ErrorIs(t, run(&bytes.Buffer{}), geo.ErrInvalidResolution)
}
