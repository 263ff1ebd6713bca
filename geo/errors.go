/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package geo

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/hypermodeinc/hexgrid/types"
)

var (
	// ErrInvalidResolution is returned for a resolution outside [0, MaxResolution].
	ErrInvalidResolution = errors.New("invalid resolution")
	// ErrInvalidCell is returned for a cell identifier the grid does not know about.
	ErrInvalidCell = errors.New("invalid cell")
	// ErrInvalidPoint is returned for a latitude outside [-90, 90] or a non finite coordinate.
	ErrInvalidPoint = errors.New("invalid point")
	// ErrInvalidBounds is returned for a bounding box that can't be used for pruning.
	ErrInvalidBounds = errors.New("invalid bounding box")
	// ErrTooManyCells is returned when tiling a shape would produce more cells than allowed.
	ErrTooManyCells = errors.New("too many cells")
)

// ResolutionError reports a point that neither its candidate cell nor any cell of the
// candidate's ring contains. It always points at a bug in the grid or in the projection, so
// callers should abort the request instead of picking some nearby cell.
type ResolutionError struct {
	Lat, Lng   float64
	Resolution int
	Candidate  CellID
	Tried      []CellID
	// Distance from the point to the centre of the candidate cell.
	Distance types.Length
}

func (e *ResolutionError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "no cell at resolution %d contains point (%v, %v): candidate %s at %s",
		e.Resolution, e.Lat, e.Lng, e.Candidate, e.Distance)
	if len(e.Tried) > 0 {
		sb.WriteString(", ring [")
		for i, c := range e.Tried {
			if i > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(c.String())
		}
		sb.WriteString("]")
	}
	return sb.String()
}
