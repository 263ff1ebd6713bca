/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package x

import (
	"fmt"
	"runtime"
)

var (
	// These variables are set using -ldflags
	hexgridVersion string
	lastCommitSHA  string
	lastCommitTime string
)

// BuildDetails returns the version information printed by "hexgrid version".
func BuildDetails() string {
	return fmt.Sprintf(`
Hexgrid version  : %v
Commit SHA-1     : %v
Commit timestamp : %v
Go version       : %v

Licensed under the Apache Public License 2.0.
© Hypermode Inc.

`,
		Version(), lastCommitSHA, lastCommitTime, runtime.Version())
}

// Version returns the version of the binary, "dev" for builds without ldflags.
func Version() string {
	if hexgridVersion == "" {
		return "dev"
	}
	return hexgridVersion
}
