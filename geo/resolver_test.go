/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package geo

import (
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/hypermodeinc/hexgrid/x"
)

// offsetGrid is H3 with a CellAt that guesses wrong.
type offsetGrid struct {
	Grid
	cellAt func(lat, lng float64, res int) CellID
}

func (g offsetGrid) CellAt(lat, lng float64, res int) CellID {
	return g.cellAt(lat, lng, res)
}

func newTestResolver(t *testing.T) *Resolver {
	return NewResolver(newTestProjector(t))
}

func TestResolveContainsPoint(t *testing.T) {
	r := newTestResolver(t)
	for res := 0; res <= MaxResolution; res++ {
		c, err := r.Resolve(28.6139, 77.2090, res)
		require.NoError(t, err)
		require.Equal(t, res, H3.Resolution(c))

		poly, err := r.proj.Project(c)
		require.NoError(t, err)
		require.True(t, poly.Contains(28.6139, 77.2090))
	}
}

func TestResolveInvalidInput(t *testing.T) {
	r := newTestResolver(t)
	for _, res := range []int{-1, MaxResolution + 1} {
		_, err := r.Resolve(0, 0, res)
		require.True(t, errors.Is(err, ErrInvalidResolution), "res %d: %v", res, err)
	}
	points := [][2]float64{
		{90.5, 0},
		{-91, 0},
		{math.NaN(), 0},
		{0, math.NaN()},
		{0, math.Inf(1)},
	}
	for _, p := range points {
		_, err := r.Resolve(p[0], p[1], 5)
		require.True(t, errors.Is(err, ErrInvalidPoint), "point %v: %v", p, err)
	}
}

func TestResolveSharedEdge(t *testing.T) {
	r := newTestResolver(t)
	c := H3.CellAt(45, 10, 5)
	b := H3.Boundary(c)
	neighbours := H3.Ring(c)

	// The midpoint of every edge is shared with one neighbour. It must resolve to a single
	// cell, always the same one, and that cell must contain it.
	for i := range b {
		a, z := b[i], b[(i+1)%len(b)]
		lat, lng := (a[1]+z[1])/2, (a[0]+z[0])/2

		first, err := r.Resolve(lat, lng, 5)
		require.NoError(t, err)
		require.True(t, first == c || containsCell(neighbours, first),
			"edge %d resolved to %s, which is neither %s nor adjacent", i, first, c)
		for j := 0; j < 5; j++ {
			again, err := r.Resolve(lat, lng, 5)
			require.NoError(t, err)
			require.Equal(t, first, again)
		}
		poly, err := r.proj.Project(first)
		require.NoError(t, err)
		require.True(t, poly.Contains(lat, lng))
	}

	// So are the vertices, where three cells meet.
	for _, v := range b {
		key, err := r.Key(v[1], v[0], 5)
		require.NoError(t, err)
		again, err := r.Key(v[1], v[0], 5)
		require.NoError(t, err)
		require.Equal(t, key, again)
	}
}

func TestResolveRandomPoints(t *testing.T) {
	r := newTestResolver(t)
	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		lat := rnd.Float64()*180 - 90
		lng := rnd.Float64()*360 - 180
		res := rnd.Intn(MaxResolution + 1)

		c, err := r.Resolve(lat, lng, res)
		require.NoError(t, err, "point (%v, %v) at resolution %d", lat, lng, res)
		poly, err := r.proj.Project(c)
		require.NoError(t, err)
		require.True(t, poly.Contains(lat, lng), "%s doesn't contain (%v, %v)", c, lat, lng)

		again, err := r.Resolve(lat, lng, res)
		require.NoError(t, err)
		require.Equal(t, c, again)
	}
}

func TestResolveAntimeridianAndPoles(t *testing.T) {
	r := newTestResolver(t)
	for res := 0; res <= 6; res++ {
		for lat := -89.5; lat < 90; lat += 7.3 {
			west, err := r.Resolve(lat, -180, res)
			require.NoError(t, err)
			east, err := r.Resolve(lat, 180, res)
			require.NoError(t, err)
			// -180 and 180 are the same meridian, but the point may be on an edge shared by
			// cells on either side, so only containment is checked.
			for lng, c := range map[float64]CellID{-180: west, 180: east} {
				poly, err := r.proj.Project(c)
				require.NoError(t, err)
				require.True(t, poly.Contains(lat, lng))
			}

			// 540 normalizes to -180.
			c, err := r.Resolve(lat, 540, res)
			require.NoError(t, err)
			require.Equal(t, west, c)
		}
		for _, lat := range []float64{90, -90} {
			for lng := -180.0; lng <= 180; lng += 45 {
				c, err := r.Resolve(lat, lng, res)
				require.NoError(t, err)
				require.Equal(t, H3.CellAt(lat, 0, res), c)
			}
		}
	}
}

func TestResolveRingFallback(t *testing.T) {
	c := H3.CellAt(45, 10, 6)
	wrong := H3.Ring(c)[0]
	grid := offsetGrid{Grid: H3, cellAt: func(lat, lng float64, res int) CellID {
		return wrong
	}}
	proj, err := NewProjector(grid, ParseProjectorOptions(ProjectorDefaults))
	require.NoError(t, err)
	defer proj.Close()
	r := NewResolver(proj)

	fallbacks := testutil.ToFloat64(x.NumRingFallbacks)
	center := H3.Center(c)
	got, err := r.Resolve(center[1], center[0], 6)
	require.NoError(t, err)
	require.Equal(t, c, got)
	require.Equal(t, fallbacks+1, testutil.ToFloat64(x.NumRingFallbacks))
}

func TestResolveFailure(t *testing.T) {
	// The guess is on the other side of the globe, so nothing in its ring can match.
	grid := offsetGrid{Grid: H3, cellAt: func(lat, lng float64, res int) CellID {
		return H3.CellAt(-lat, normalizeLng(lng+180), res)
	}}
	proj, err := NewProjector(grid, ParseProjectorOptions(ProjectorDefaults))
	require.NoError(t, err)
	defer proj.Close()
	r := NewResolver(proj)

	failures := testutil.ToFloat64(x.NumResolveFailures)
	_, err = r.Resolve(45, 10, 5)
	require.Error(t, err)
	require.Equal(t, failures+1, testutil.ToFloat64(x.NumResolveFailures))

	var rerr *ResolutionError
	require.True(t, errors.As(err, &rerr))
	require.Equal(t, 5, rerr.Resolution)
	require.Equal(t, H3.CellAt(-45, -170, 5), rerr.Candidate)
	require.Equal(t, H3.Ring(rerr.Candidate), rerr.Tried)
	require.Greater(t, float64(rerr.Distance), 10000e3)
	require.Contains(t, err.Error(), rerr.Candidate.String())
}

func TestResolveConcurrent(t *testing.T) {
	r := newTestResolver(t)
	pts := make([]orb.Point, 200)
	rnd := rand.New(rand.NewSource(3))
	for i := range pts {
		pts[i] = orb.Point{rnd.Float64()*360 - 180, rnd.Float64()*180 - 90}
	}
	want := make([]CellID, len(pts))
	for i, p := range pts {
		c, err := r.Resolve(p[1], p[0], 8)
		require.NoError(t, err)
		want[i] = c
	}

	var wg sync.WaitGroup
	errCh := make(chan error, 8)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, p := range pts {
				c, err := r.Resolve(p[1], p[0], 8)
				if err != nil {
					errCh <- err
					return
				}
				if c != want[i] {
					errCh <- errors.Errorf("point %v resolved to %s, want %s", p, c, want[i])
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		require.NoError(t, err)
	}
}

func TestKey(t *testing.T) {
	r := newTestResolver(t)
	key, err := r.Key(37.4249518, -122.082506, 9)
	require.NoError(t, err)
	c, err := ParseCellID(key)
	require.NoError(t, err)
	require.Equal(t, H3.CellAt(37.4249518, -122.082506, 9), c)

	_, err = r.Key(100, 0, 9)
	require.True(t, errors.Is(err, ErrInvalidPoint))
}

func containsCell(cells []CellID, c CellID) bool {
	for _, cc := range cells {
		if cc == c {
			return true
		}
	}
	return false
}
