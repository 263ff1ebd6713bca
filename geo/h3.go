/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package geo

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/uber/h3-go/v4"
)

// H3 is the Grid backed by the H3 reference library.
var H3 Grid = h3Grid{}

type h3Grid struct{}

func (h3Grid) CellAt(lat, lng float64, res int) CellID {
	return CellID(h3.LatLngToCell(h3.NewLatLng(lat, lng), res))
}

func (h3Grid) Ring(c CellID) []CellID {
	disk := h3.Cell(c).GridDisk(1)
	ring := make([]CellID, 0, len(disk))
	for _, n := range disk {
		// GridDisk includes the origin, and pads with zero cells around pentagons.
		if CellID(n) == c || n == 0 {
			continue
		}
		ring = append(ring, CellID(n))
	}
	sortCells(ring)
	return ring
}

func (h3Grid) Boundary(c CellID) []orb.Point {
	b := h3.Cell(c).Boundary()
	pts := make([]orb.Point, len(b))
	for i, ll := range b {
		pts[i] = orb.Point{ll.Lng, ll.Lat}
	}
	return pts
}

func (h3Grid) Center(c CellID) orb.Point {
	ll := h3.Cell(c).LatLng()
	return orb.Point{ll.Lng, ll.Lat}
}

func (h3Grid) Children(c CellID) []CellID {
	cell := h3.Cell(c)
	return toCellIDs(cell.Children(cell.Resolution() + 1))
}

func (h3Grid) BaseCells() []CellID {
	return toCellIDs(h3.Res0Cells())
}

func (h3Grid) Resolution(c CellID) int {
	return h3.Cell(c).Resolution()
}

func (h3Grid) IsValid(c CellID) bool {
	return h3.Cell(c).IsValid()
}

func toCellIDs(cells []h3.Cell) []CellID {
	out := make([]CellID, len(cells))
	for i, c := range cells {
		out[i] = CellID(c)
	}
	sortCells(out)
	return out
}

func sortCells(cells []CellID) {
	sort.Slice(cells, func(i, j int) bool { return cells[i] < cells[j] })
}
