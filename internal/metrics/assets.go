package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AssetWrites counts asset uploads by kind and outcome (stored, rejected, failed).
	AssetWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "garrison_asset_writes_total",
			Help: "Total number of character asset uploads",
		},
		[]string{"kind", "result"},
	)

	// AssetStoredBytes observes the size of blobs after normalization.
	AssetStoredBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "garrison_asset_stored_bytes",
			Help:    "Size of stored character assets after normalization",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
		},
		[]string{"kind"},
	)

	// AssetReads counts asset reads by kind and outcome (hit, miss, failed).
	AssetReads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "garrison_asset_reads_total",
			Help: "Total number of character asset reads",
		},
		[]string{"kind", "result"},
	)

	// AuthFailures counts rejected bearer authentications by reason.
	AuthFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "garrison_auth_failures_total",
			Help: "Total number of rejected Authorization headers",
		},
		[]string{"reason"},
	)
)
