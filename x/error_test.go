/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package x

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestWrapf(t *testing.T) {
	require.NoError(t, Wrapf(nil, "while doing %s", "nothing"))

	cause := errors.New("boom")
	err := Wrapf(cause, "while doing %s", "something")
	require.EqualError(t, err, "while doing something: boom")
	require.Equal(t, cause, errors.Cause(err))
}

func TestCheckNil(t *testing.T) {
	Check(nil)
	Checkf(nil, "never printed")
	AssertTruef(true, "never printed")
}
