/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package resolve

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hypermodeinc/hexgrid/geo"
	"github.com/hypermodeinc/hexgrid/x"
)

// Resolve is the sub-command invoked when running "hexgrid resolve".
var Resolve x.SubCommand

func init() {
	Resolve.Cmd = &cobra.Command{
		Use:   "resolve",
		Short: "Prints the cell owning a point",
		Long: "Resolve prints the bucket key of the cell containing a point at the given " +
			"resolution, along with the cell area.",
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if err := run(os.Stdout); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
		},
		Annotations: map[string]string{"group": "tool"},
	}
	Resolve.EnvPrefix = "HEXGRID_RESOLVE"
	Resolve.Cmd.SetHelpTemplate(x.NonRootTemplate)

	flag := Resolve.Cmd.Flags()
	flag.Float64("lat", 0, "Latitude of the point, in degrees.")
	flag.Float64("lng", 0, "Longitude of the point, in degrees.")
	flag.IntP("resolution", "r", 5, "Resolution of the cell, between 0 and 15.")
	x.Check(Resolve.Cmd.MarkFlagRequired("lat"))
	x.Check(Resolve.Cmd.MarkFlagRequired("lng"))
}

func run(w io.Writer) error {
	proj, err := geo.NewProjector(geo.H3, geo.ParseProjectorOptions(Resolve.Conf.GetString("cache")))
	if err != nil {
		return err
	}
	defer proj.Close()

	lat, lng := Resolve.Conf.GetFloat64("lat"), Resolve.Conf.GetFloat64("lng")
	res := Resolve.GetIntP("resolution", "r", 5)
	c, err := geo.NewResolver(proj).Resolve(lat, lng, res)
	if err != nil {
		return err
	}
	area, err := proj.Area(c)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "cell       : %s\n", c)
	fmt.Fprintf(w, "resolution : %d\n", res)
	fmt.Fprintf(w, "area       : %s\n", area)
	return nil
}
