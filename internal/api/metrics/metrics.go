// Package metrics defines and registers the custom Prometheus metrics of the
// problemhub API. It is the single source of truth for metric names, labels
// and help strings. All metrics register with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "problemhub"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthRejectionsTotal counts requests stopped by the auth layer.
// Label:
//   - reason: "missing_token", "invalid_token", "user_not_found",
//     "unauthenticated" or "insufficient_role"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by authentication or role checks.",
	},
	[]string{"reason"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts accounts created through the public register endpoint.
// Label:
//   - role: the role granted to the new account
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registered accounts, by role.",
	},
	[]string{"role"},
)

// ── Content metrics ───────────────────────────────────────────────────────────

// ProblemsCreatedTotal counts problems added to the catalogue.
// Label:
//   - difficulty: "easy", "medium" or "hard"
var ProblemsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "problems_created_total",
		Help:      "Total number of problems created, by difficulty.",
	},
	[]string{"difficulty"},
)

// StatsCacheTotal counts lookups of the cached problem overview.
// Label:
//   - result: "hit" or "miss"
var StatsCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stats_cache_total",
		Help:      "Total number of problem overview cache lookups, by result.",
	},
	[]string{"result"},
)

// ── File metrics ──────────────────────────────────────────────────────────────

// FileUploadBytes observes the size of accepted uploads.
var FileUploadBytes = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "file_upload_bytes",
		Help:      "Size of accepted file uploads in bytes.",
		Buckets:   prometheus.ExponentialBuckets(1024, 4, 8), // 1KiB .. 16MiB
	},
)

// BlobCleanupTotal counts background blob deletions.
// Label:
//   - result: "deleted", "failed" or "dropped" (queue full)
var BlobCleanupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "blob_cleanup_total",
		Help:      "Total number of background blob deletions, by result.",
	},
	[]string{"result"},
)

// BlobCleanupQueueDepth tracks pending deletions per cleaner worker.
// Label:
//   - worker_id: numeric worker index
var BlobCleanupQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "blob_cleanup_queue_depth",
		Help:      "Current number of blob deletions pending in each cleaner worker channel.",
	},
	[]string{"worker_id"},
)
