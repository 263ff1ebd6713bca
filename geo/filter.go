/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package geo

import (
	"strings"

	"github.com/pkg/errors"
)

// QueryType is the relation a shape must have with a cell to fall in its bucket.
type QueryType byte

const (
	// QueryTypeWithin keeps the cells the shape is entirely inside of.
	QueryTypeWithin QueryType = iota
	// QueryTypeContains keeps the cells the shape covers entirely.
	QueryTypeContains
	// QueryTypeIntersects keeps every cell the shape has a point in common with.
	QueryTypeIntersects
)

// ParseQueryType reads "within", "contains" or "intersects".
func ParseQueryType(s string) (QueryType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "within":
		return QueryTypeWithin, nil
	case "contains":
		return QueryTypeContains, nil
	case "intersects", "":
		return QueryTypeIntersects, nil
	}
	return 0, errors.Errorf("Unknown query type %q", s)
}

func (q QueryType) String() string {
	switch q {
	case QueryTypeWithin:
		return "within"
	case QueryTypeContains:
		return "contains"
	case QueryTypeIntersects:
		return "intersects"
	}
	return "unknown"
}

// Filter selects the cell buckets a shape belongs to.
type Filter struct {
	Type QueryType
	rel  *Relator
}

// NewFilter returns a Filter of type qt.
func NewFilter(proj *Projector, qt QueryType) *Filter {
	return &Filter{Type: qt, rel: NewRelator(proj)}
}

// MatchesRelation applies the query type to an already computed relation.
func (f *Filter) MatchesRelation(r Relation) bool {
	switch f.Type {
	case QueryTypeWithin:
		return r == Within
	case QueryTypeContains:
		return r == Contains
	case QueryTypeIntersects:
		return IsCandidate(r)
	}
	return false
}

// Matches reports whether shape belongs to the bucket of cell c.
func (f *Filter) Matches(shape Shape, c CellID) (bool, error) {
	r, err := f.rel.RelateCell(shape, c)
	if err != nil {
		return false, err
	}
	return f.MatchesRelation(r), nil
}
