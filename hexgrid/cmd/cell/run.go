/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package cell

import (
	"fmt"
	"io"
	"os"

	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hypermodeinc/hexgrid/geo"
	"github.com/hypermodeinc/hexgrid/x"
)

// Cell is the sub-command invoked when running "hexgrid cell".
var Cell x.SubCommand

func init() {
	Cell.Cmd = &cobra.Command{
		Use:   "cell",
		Short: "Prints the planar polygon of a cell as GeoJSON",
		Long: "Cell prints the cartesian projection used for containment and bounding box " +
			"tests. Cells crossing the antimeridian come out as one polygon per side.",
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if err := run(os.Stdout); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
		},
		Annotations: map[string]string{"group": "tool"},
	}
	Cell.EnvPrefix = "HEXGRID_CELL"
	Cell.Cmd.SetHelpTemplate(x.NonRootTemplate)

	flag := Cell.Cmd.Flags()
	flag.String("cell", "", "Bucket key of the cell, as printed by resolve.")
	flag.Bool("ring", false, "Also print the cells adjacent to the cell.")
	x.Check(Cell.Cmd.MarkFlagRequired("cell"))
}

func run(w io.Writer) error {
	c, err := geo.ParseCellID(Cell.Conf.GetString("cell"))
	if err != nil {
		return err
	}
	proj, err := geo.NewProjector(geo.H3, geo.ParseProjectorOptions(Cell.Conf.GetString("cache")))
	if err != nil {
		return err
	}
	defer proj.Close()

	cells := []geo.CellID{c}
	if Cell.Conf.GetBool("ring") {
		if !geo.H3.IsValid(c) {
			return errors.Wrapf(geo.ErrInvalidCell, "cell %s", c)
		}
		cells = append(cells, geo.H3.Ring(c)...)
	}
	fc, err := FeatureCollection(proj, cells)
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

// FeatureCollection returns one multi polygon feature per cell, with the cell key, its
// resolution and its area as properties.
func FeatureCollection(proj *geo.Projector, cells []geo.CellID) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()
	for _, c := range cells {
		p, err := proj.Project(c)
		if err != nil {
			return nil, err
		}
		area, err := proj.Area(c)
		if err != nil {
			return nil, err
		}
		f := geojson.NewMultiPolygonFeature(coordinates(p)...)
		f.SetProperty("cell", c.String())
		f.SetProperty("resolution", proj.Grid().Resolution(c))
		f.SetProperty("area_m2", float64(area))
		fc.AddFeature(f)
	}
	return fc, nil
}

func coordinates(p *geo.CartesianPolygon) [][][][]float64 {
	mp := p.Polygons()
	out := make([][][][]float64, len(mp))
	for i, poly := range mp {
		out[i] = make([][][]float64, len(poly))
		for j, r := range poly {
			ring := make([][]float64, len(r))
			for k, pt := range r {
				ring[k] = []float64{pt[0], pt[1]}
			}
			out[i][j] = ring
		}
	}
	return out
}
