// Package metrics defines all custom Prometheus metrics for the catalog
// API. It is the single source of truth for metric names, labels, and help
// strings; metrics register themselves with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog"

// ProductMutationsTotal counts successful product mutations.
// Label:
//   - action: "create", "update", or "delete"
var ProductMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_mutations_total",
		Help:      "Total number of successful product mutations, by action.",
	},
	[]string{"action"},
)

// AuthAttemptsTotal counts authentication operations.
// Labels:
//   - operation: "register" or "login"
//   - result: "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of registration and login attempts, by result.",
	},
	[]string{"operation", "result"},
)

// EventsPublishedTotal counts real-time notification publish attempts.
// Labels:
//   - type: event type ("product_created", "product_updated", "product_deleted")
//   - result: "ok", "error", or "dropped" (queue full)
var EventsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_published_total",
		Help:      "Total number of notification events handed to the sink, by result.",
	},
	[]string{"type", "result"},
)

// NotifyQueueDepth tracks the number of events waiting in each dispatcher
// worker channel.
// Label:
//   - worker_id: numeric worker index ("0", "1", ...)
var NotifyQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notify_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// EventPublishDuration measures a single publish to the real-time sink.
var EventPublishDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "event_publish_duration_seconds",
		Help:      "Duration of one notification publish to the broadcast channel.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"type"},
)
