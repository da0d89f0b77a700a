package observability

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by statement verb.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "skillswap_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	// SwapTransitionsTotal counts swap request lifecycle transitions by outcome status.
	SwapTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_swap_transitions_total",
		Help: "Total number of swap request lifecycle transitions",
	}, []string{"status"})

	// FeedbackSubmittedTotal counts feedback entries created, labeled by rating.
	FeedbackSubmittedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_feedback_submitted_total",
		Help: "Total number of feedback entries submitted by rating",
	}, []string{"rating"})

	// AuditWriteFailures counts activity log writes that were dropped.
	// The audit trail is best-effort, so failures are surfaced here rather
	// than failing the parent operation.
	AuditWriteFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_audit_write_failures_total",
		Help: "Total number of failed activity log writes by action",
	}, []string{"action"})
)

// ObserveQueryLatency records the latency of a database statement. The
// operation label is the leading SQL verb (SELECT, INSERT, ...).
func ObserveQueryLatency(sql string, elapsed time.Duration) {
	verb := "OTHER"
	if fields := strings.Fields(sql); len(fields) > 0 {
		verb = strings.ToUpper(fields[0])
	}
	DatabaseQueryLatency.WithLabelValues(verb).Observe(elapsed.Seconds())
}

// RecordSwapTransition increments the transition counter for the given status.
func RecordSwapTransition(status string) {
	SwapTransitionsTotal.WithLabelValues(status).Inc()
}

// RecordAuditFailure increments the dropped-audit counter for the given action.
func RecordAuditFailure(action string) {
	AuditWriteFailures.WithLabelValues(action).Inc()
}
