/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package x

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// NumResolved is the number of points resolved to a cell.
	NumResolved = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hexgrid",
		Name:      "resolve_total",
		Help:      "Total number of points resolved to a cell",
	})
	// NumRingFallbacks is the number of points owned by a neighbour of the grid's candidate.
	NumRingFallbacks = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hexgrid",
		Name:      "resolve_ring_fallbacks_total",
		Help:      "Total number of points resolved to a neighbour of the candidate cell",
	})
	// NumResolveFailures is the number of points no cell could be found for.
	NumResolveFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hexgrid",
		Name:      "resolve_failures_total",
		Help:      "Total number of points not contained by the candidate cell or its ring",
	})
	// NumProjections is the number of cell polygons computed.
	NumProjections = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hexgrid",
		Name:      "projections_total",
		Help:      "Total number of cell polygons computed",
	})
	// ProjectionCacheHits is the number of cell polygons served from the cache.
	ProjectionCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hexgrid",
		Name:      "projection_cache_hits_total",
		Help:      "Total number of cell polygons served from the cache",
	})
)

func init() {
	prometheus.MustRegister(
		NumResolved,
		NumRingFallbacks,
		NumResolveFailures,
		NumProjections,
		ProjectionCacheHits,
	)
}
