/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package x

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// SubCommand is a cobra command with its own viper configuration. Conf is bound to the
// command flags, the root persistent flags and the environment in the root command.
type SubCommand struct {
	Cmd  *cobra.Command
	Conf *viper.Viper

	EnvPrefix string
}

// NonRootTemplate is the help template of sub-commands. It leaves out the global flags.
const NonRootTemplate = `{{if .Long}}{{.Long}}{{else}}{{.Short}}{{end}}

Usage:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasExample}}

Examples:
{{.Example}}{{end}}{{if .HasAvailableLocalFlags}}

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}

Use "{{.CommandPath}} [command] --help" for more information about a command.
`

func (s SubCommand) GetStringP(name, shorthand, def string) string {
	if ok := s.Conf.IsSet(name); ok {
		return s.Conf.GetString(name)
	}
	if ok := s.Conf.IsSet(shorthand); ok {
		return s.Conf.GetString(shorthand)
	}
	return def
}

func (s SubCommand) GetIntP(name, shorthand string, def int) int {
	if ok := s.Conf.IsSet(name); ok {
		return s.Conf.GetInt(name)
	}
	if ok := s.Conf.IsSet(shorthand); ok {
		return s.Conf.GetInt(shorthand)
	}
	return def
}
