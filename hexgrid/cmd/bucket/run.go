/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package bucket

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/dustin/go-humanize"
	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hypermodeinc/hexgrid/geo"
	"github.com/hypermodeinc/hexgrid/x"
)

// Bucket is the sub-command invoked when running "hexgrid bucket".
var Bucket x.SubCommand

func init() {
	Bucket.Cmd = &cobra.Command{
		Use:   "bucket",
		Short: "Counts points per cell",
		Long: "Bucket reads a GeoJSON feature collection and prints the number of points " +
			"falling in each cell at the given resolution, largest buckets first.",
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if err := run(cmd.Context(), os.Stdout); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
		},
		Annotations: map[string]string{"group": "tool"},
	}
	Bucket.EnvPrefix = "HEXGRID_BUCKET"
	Bucket.Cmd.SetHelpTemplate(x.NonRootTemplate)

	flag := Bucket.Cmd.Flags()
	flag.StringP("points", "p", "", "Location of a GeoJSON feature collection of points.")
	flag.IntP("resolution", "r", 5, "Resolution of the cells, between 0 and 15.")
	flag.String("bbox", "", "Only count cells intersecting minLng,minLat,maxLng,maxLat.")
	flag.IntP("workers", "j", 4, "Number of points resolved in parallel.")
	x.Check(Bucket.Cmd.MarkFlagRequired("points"))
}

// ReadPoints returns the points and multi points of a feature collection as {lng, lat}.
// Features of any other type are skipped.
func ReadPoints(data []byte) ([]orb.Point, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrapf(err, "while reading feature collection")
	}
	var pts []orb.Point
	for _, f := range fc.Features {
		switch g := f.Geometry; {
		case g == nil:
		case g.IsPoint():
			if len(g.Point) < 2 {
				return nil, errors.Errorf("Point feature %v has less than 2 co-ordinates", f.ID)
			}
			pts = append(pts, orb.Point{g.Point[0], g.Point[1]})
		case g.IsMultiPoint():
			for _, p := range g.MultiPoint {
				if len(p) < 2 {
					return nil, errors.Errorf("MultiPoint feature %v has a short position", f.ID)
				}
				pts = append(pts, orb.Point{p[0], p[1]})
			}
		}
	}
	return pts, nil
}

// Count returns the number of points per bucket key. Points are split between workers;
// a point no cell can be found for aborts the whole count. When tiler is bounded, buckets
// whose cell doesn't intersect its bounds are left out.
func Count(ctx context.Context, r *geo.Resolver, tiler *geo.Tiler, pts []orb.Point,
	workers int) (map[string]int64, error) {

	if workers < 1 {
		workers = 1
	}
	var mu sync.Mutex
	counts := make(map[string]int64)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	chunk := (len(pts) + workers - 1) / workers
	for start := 0; start < len(pts); start += chunk {
		end := min(start+chunk, len(pts))
		batch := pts[start:end]
		g.Go(func() error {
			local := make(map[geo.CellID]int64)
			for _, p := range batch {
				if err := ctx.Err(); err != nil {
					return err
				}
				c, err := r.Resolve(p[1], p[0], tiler.Resolution())
				if err != nil {
					return err
				}
				local[c]++
			}
			for c := range local {
				ok, err := tiler.IntersectsBounds(c)
				if err != nil {
					return err
				}
				if !ok {
					delete(local, c)
				}
			}
			mu.Lock()
			defer mu.Unlock()
			for c, n := range local {
				counts[c.String()] += n
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return counts, nil
}

func run(ctx context.Context, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	data, err := os.ReadFile(Bucket.GetStringP("points", "p", ""))
	if err != nil {
		return errors.Wrapf(err, "while reading points")
	}
	pts, err := ReadPoints(data)
	if err != nil {
		return err
	}

	proj, err := geo.NewProjector(geo.H3, geo.ParseProjectorOptions(Bucket.Conf.GetString("cache")))
	if err != nil {
		return err
	}
	defer proj.Close()

	res := Bucket.GetIntP("resolution", "r", 5)
	var tiler *geo.Tiler
	if bbox := Bucket.Conf.GetString("bbox"); bbox != "" {
		box, err := geo.ParseBoundingBox(bbox)
		if err != nil {
			return err
		}
		tiler, err = geo.NewBoundedTiler(proj, res, box, 0)
		if err != nil {
			return err
		}
	} else if tiler, err = geo.NewTiler(proj, res, 0); err != nil {
		return err
	}

	counts, err := Count(ctx, geo.NewResolver(proj), tiler, pts, Bucket.GetIntP("workers", "j", 4))
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", k, humanize.Comma(counts[k])); err != nil {
			return err
		}
	}
	return nil
}
