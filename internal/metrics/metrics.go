// Package metrics declares the prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "staffdash"

var (
	BookmarkMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "bookmarks",
		Name:      "mutations_total",
		Help:      "Bookmark state changes, by operation.",
	}, []string{"op"})

	BookmarkPersistFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "bookmarks",
		Name:      "persist_failures_total",
		Help:      "Failed writes of the bookmark set to its slot.",
	})

	BookmarkCount = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "bookmarks",
		Name:      "count",
		Help:      "Current number of bookmarked employees.",
	})

	FilterRequests = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "search",
		Name:      "filter_requests_total",
		Help:      "Employee list requests served through the filter engine.",
	})

	FilterResultSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "search",
		Name:      "filter_result_size",
		Help:      "Number of employees returned per filtered request.",
		Buckets:   []float64{0, 1, 5, 10, 20, 50, 100, 250},
	})

	RosterReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "roster",
		Name:      "reloads_total",
		Help:      "Roster reload attempts, by outcome.",
	}, []string{"outcome"})

	RosterSize = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "roster",
		Name:      "employees",
		Help:      "Employees currently loaded in the roster.",
	})

	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "rate_limited_total",
		Help:      "Requests rejected by the per-IP rate limiter.",
	})

	WebsocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "ws",
		Name:      "clients",
		Help:      "Connected bookmark event subscribers.",
	})
)
