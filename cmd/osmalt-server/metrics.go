package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// queriesTotal counts queries by kind ("route", "facilities", "nearest") and result
	// Results: "success", "unreachable", "bad_request", "not_found", "error"
	queriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "osmalt_queries_total",
		Help: "Total queries by kind and result",
	}, []string{"kind", "result"})

	routeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "osmalt_route_duration_seconds",
		Help:    "Point-to-point query duration",
		Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1, 10},
	}, []string{"algorithm"})

	routeVisited = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "osmalt_route_visited_nodes",
		Help:    "Nodes finalized per point-to-point query",
		Buckets: prometheus.ExponentialBuckets(10, 10, 7),
	}, []string{"algorithm"})

	facilitiesDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "osmalt_facilities_duration_seconds",
		Help:    "Nearest points of interest query duration",
		Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1, 10},
	})
)
