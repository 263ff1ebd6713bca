/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package tile

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hypermodeinc/hexgrid/geo"
	"github.com/hypermodeinc/hexgrid/hexgrid/cmd/cell"
	"github.com/hypermodeinc/hexgrid/types"
	"github.com/hypermodeinc/hexgrid/x"
)

// Tile is the sub-command invoked when running "hexgrid tile".
var Tile x.SubCommand

func init() {
	Tile.Cmd = &cobra.Command{
		Use:   "tile",
		Short: "Prints the cells a shape falls into",
		Long: "Tile prints the bucket keys of the cells at the given resolution that the " +
			"shape matches, optionally restricted to the cells intersecting a bounding box.",
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if err := run(os.Stdout); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
		},
		Annotations: map[string]string{"group": "tool"},
	}
	Tile.EnvPrefix = "HEXGRID_TILE"
	Tile.Cmd.SetHelpTemplate(x.NonRootTemplate)

	flag := Tile.Cmd.Flags()
	flag.StringP("shape", "s", "", "Location of a GeoJSON geometry file, - for stdin.")
	flag.String("geojson", "", "Inline GeoJSON geometry, used when --shape is not set.")
	flag.IntP("resolution", "r", 3, "Resolution of the cells, between 0 and 15.")
	flag.String("bbox", "", "Only keep cells intersecting minLng,minLat,maxLng,maxLat.")
	flag.Int("limit", 10000, "Maximum number of cells. Set it to 0 to remove the limit.")
	flag.String("type", "intersects", "Query type, one of [within, contains, intersects].")
	flag.Bool("features", false, "Print the cells as a GeoJSON feature collection.")
}

func readShape() (types.Geo, error) {
	var g types.Geo
	var data []byte
	var err error
	switch path := Tile.GetStringP("shape", "s", ""); path {
	case "":
		data = []byte(Tile.Conf.GetString("geojson"))
	case "-":
		data, err = io.ReadAll(os.Stdin)
	default:
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return g, errors.Wrapf(err, "while reading shape")
	}
	if len(data) == 0 {
		return g, errors.Errorf("One of --shape or --geojson is required")
	}
	return g, x.Wrapf(g.UnmarshalText(data), "while parsing shape")
}

func run(w io.Writer) error {
	g, err := readShape()
	if err != nil {
		return err
	}
	shape, err := geo.ShapeFromGeo(g)
	if err != nil {
		return err
	}
	qt, err := geo.ParseQueryType(Tile.Conf.GetString("type"))
	if err != nil {
		return err
	}

	proj, err := geo.NewProjector(geo.H3, geo.ParseProjectorOptions(Tile.Conf.GetString("cache")))
	if err != nil {
		return err
	}
	defer proj.Close()

	res := Tile.GetIntP("resolution", "r", 3)
	limit := Tile.Conf.GetInt("limit")
	var tiler *geo.Tiler
	if bbox := Tile.Conf.GetString("bbox"); bbox != "" {
		box, err := geo.ParseBoundingBox(bbox)
		if err != nil {
			return err
		}
		tiler, err = geo.NewBoundedTiler(proj, res, box, limit)
		if err != nil {
			return err
		}
	} else if tiler, err = geo.NewTiler(proj, res, limit); err != nil {
		return err
	}

	cells, err := tiler.Cells(shape)
	if err != nil {
		return err
	}
	if qt != geo.QueryTypeIntersects {
		f := geo.NewFilter(proj, qt)
		matched := cells[:0]
		for _, c := range cells {
			ok, err := f.Matches(shape, c)
			if err != nil {
				return err
			}
			if ok {
				matched = append(matched, c)
			}
		}
		cells = matched
	}
	glog.Infof("%s cells at resolution %d match the shape (%s)",
		humanize.Comma(int64(len(cells))), res, qt)

	if Tile.Conf.GetBool("features") {
		fc, err := cell.FeatureCollection(proj, cells)
		if err != nil {
			return err
		}
		out, err := fc.MarshalJSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	}
	for _, c := range cells {
		if _, err := fmt.Fprintln(w, c); err != nil {
			return err
		}
	}
	return nil
}
