/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package geo

import (
	"strconv"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// MaxResolution is the finest resolution supported by the grid.
const MaxResolution = 15

// CellID identifies one hexagonal grid cell. The resolution is encoded in the identifier
// itself, so a CellID is only meaningful at the resolution it was produced for.
type CellID uint64

// String returns the canonical text encoding of the cell. It is used as the bucket key.
func (c CellID) String() string {
	return strconv.FormatUint(uint64(c), 16)
}

// ParseCellID parses the canonical text encoding produced by CellID.String. It does not check
// that the cell exists in the grid, use Grid.IsValid for that.
func ParseCellID(s string) (CellID, error) {
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidCell, "while parsing %q: %v", s, err)
	}
	return CellID(v), nil
}

// Grid is the hierarchical index the core is layered on. Implementations are expected to be
// best-effort: CellAt may return a neighbour of the cell whose boundary actually contains the
// coordinate.
type Grid interface {
	// CellAt returns the cell at res that the index associates with the coordinate.
	CellAt(lat, lng float64, res int) CellID
	// Ring returns the cells adjacent to c in ascending CellID order.
	Ring(c CellID) []CellID
	// Boundary returns the vertices of c as {lng, lat} points, not closed.
	Boundary(c CellID) []orb.Point
	// Center returns the centre of c as a {lng, lat} point.
	Center(c CellID) orb.Point
	// Children returns the cells one resolution finer than c that descend from it.
	Children(c CellID) []CellID
	// BaseCells returns all the cells at resolution 0.
	BaseCells() []CellID
	Resolution(c CellID) int
	IsValid(c CellID) bool
}

func validResolution(res int) error {
	if res < 0 || res > MaxResolution {
		return errors.Wrapf(ErrInvalidResolution, "resolution %d is outside [0, %d]",
			res, MaxResolution)
	}
	return nil
}
