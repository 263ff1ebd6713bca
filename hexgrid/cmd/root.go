/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package cmd

import (
	goflag "flag"
	"fmt"
	"os"
	"strings"

	"github.com/dgraph-io/ristretto/v2/z"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hypermodeinc/hexgrid/geo"
	"github.com/hypermodeinc/hexgrid/hexgrid/cmd/bucket"
	"github.com/hypermodeinc/hexgrid/hexgrid/cmd/cell"
	"github.com/hypermodeinc/hexgrid/hexgrid/cmd/resolve"
	"github.com/hypermodeinc/hexgrid/hexgrid/cmd/tile"
	"github.com/hypermodeinc/hexgrid/hexgrid/cmd/version"
	"github.com/hypermodeinc/hexgrid/x"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "hexgrid",
	Short: "hexgrid: hexagonal grid bucketing for geo aggregations",
	Long: `
hexgrid assigns points and shapes to the cells of the H3 hexagonal grid at a
chosen resolution. It resolves points on cell boundaries to a single owning
cell, prunes cells outside a viewport and relates shapes with cells.
` + x.BuildDetails(),
	PersistentPreRunE: cobra.NoArgs,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	goflag.Parse()
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

var rootConf = viper.New()

var subcommands = []*x.SubCommand{
	&resolve.Resolve, &cell.Cell, &tile.Tile, &bucket.Bucket, &version.Version,
}

func init() {
	RootCmd.PersistentFlags().String("config", "",
		"Configuration file. Takes precedence over default values, but is "+
			"overridden to values set with environment variables and flags.")
	RootCmd.PersistentFlags().String("cache", geo.ProjectorDefaults,
		z.NewSuperFlagHelp(geo.ProjectorDefaults).
			Head("Projection cache options").
			Flag("size",
				"The maximum number of cell polygons kept in memory. Set it to 0 to disable "+
					"the cache.").
			Flag("counters",
				"The number of keys tracked to decide which polygons to keep.").
			Flag("buffer-items",
				"The number of gets buffered before they are applied to the cache policy.").
			String())
	x.Check(rootConf.BindPFlags(RootCmd.PersistentFlags()))

	// glog registers its flags on the go flag set.
	flag.CommandLine.AddGoFlagSet(goflag.CommandLine)

	for _, sc := range subcommands {
		RootCmd.AddCommand(sc.Cmd)
		sc.Conf = viper.New()
		x.Check(sc.Conf.BindPFlags(sc.Cmd.Flags()))
		x.Check(sc.Conf.BindPFlags(RootCmd.PersistentFlags()))
		sc.Conf.AutomaticEnv()
		sc.Conf.SetEnvPrefix(sc.EnvPrefix)
		// Flags use dashes, environment variables use underscores.
		sc.Conf.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	}
	cobra.OnInitialize(func() {
		cfg := rootConf.GetString("config")
		if cfg == "" {
			return
		}
		for _, sc := range subcommands {
			sc.Conf.SetConfigFile(cfg)
			x.Checkf(sc.Conf.ReadInConfig(), "reading config %s", cfg)
		}
	})
}
