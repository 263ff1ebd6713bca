/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package x

// This file contains some functions for error handling. Library code returns errors wrapped
// with github.com/pkg/errors, and only stops the process on a broken invariant. Some common
// use cases are:
// (1) Setup fails in main and there is nothing to recover. Use x.Check, x.Checkf.
// (2) An invariant is broken. Use x.AssertTruef.
// (3) An error from an external lib is passed on with some context. Use x.Wrapf.

import (
	"log"

	"github.com/pkg/errors"
)

// Check logs fatal if err != nil.
func Check(err error) {
	if err != nil {
		err = errors.Wrap(err, "")
		log.Fatalf("%+v", err)
	}
}

// Checkf is Check with extra info.
func Checkf(err error, format string, args ...interface{}) {
	if err != nil {
		err = errors.Wrapf(err, format, args...)
		log.Fatalf("%+v", err)
	}
}

// AssertTruef asserts that b is true. Otherwise, it logs fatal with extra info.
func AssertTruef(b bool, format string, args ...interface{}) {
	if !b {
		log.Fatalf("%+v", errors.Errorf(format, args...))
	}
}

// Wrapf is errors.Wrapf that keeps a nil error nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, format, args...)
}
