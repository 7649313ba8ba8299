// Package metrics provides Prometheus metrics for vault discovery.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	listingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "obsidian_clipper_vault_listings_total",
			Help: "Total number of vault listing requests",
		},
		[]string{"status"},
	)

	foldersDiscovered = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "obsidian_clipper_vault_folders",
			Help: "Number of folders found by the last discovery run",
		},
	)

	discoveryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "obsidian_clipper_vault_discovery_duration_seconds",
			Help:    "Duration of full vault discovery runs in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	subtreesSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "obsidian_clipper_vault_subtrees_skipped_total",
			Help: "Subtrees dropped because their listing failed",
		},
	)
)

// ListingSucceeded records a successful listing request.
func ListingSucceeded() {
	listingsTotal.WithLabelValues("ok").Inc()
}

// ListingFailed records a failed listing request.
func ListingFailed() {
	listingsTotal.WithLabelValues("error").Inc()
}

// SubtreeSkipped records a subtree dropped after a non-root listing failure.
func SubtreeSkipped() {
	subtreesSkipped.Inc()
}

// DiscoveryCompleted records the outcome of one full discovery run.
func DiscoveryCompleted(folders int, seconds float64) {
	foldersDiscovered.Set(float64(folders))
	discoveryDuration.Observe(seconds)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
