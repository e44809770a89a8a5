package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SyncMetrics records outcomes of remote store operations and fallback
// activations per collection.
type SyncMetrics struct {
	writeSuccess *prometheus.CounterVec
	writeFailure *prometheus.CounterVec
	fallbacks    *prometheus.CounterVec
	snapshotLag  *prometheus.HistogramVec
}

// NewSyncMetrics registers the sync metrics on the provided registerer.
// A nil registerer yields a no-op recorder, which tests rely on.
func NewSyncMetrics(reg prometheus.Registerer) *SyncMetrics {
	if reg == nil {
		return &SyncMetrics{}
	}
	writeSuccess := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_write_success",
		Help: "Remote writes acknowledged by the document store.",
	}, []string{"collection", "op"})
	writeFailure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_write_failure",
		Help: "Remote writes rejected by the document store.",
	}, []string{"collection", "op", "code"})
	fallbacks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_fallback_activations",
		Help: "Operations applied to local state after a remote failure.",
	}, []string{"collection", "op"})
	snapshotLag := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "store_snapshot_seconds",
		Help:    "Time spent reading a full collection snapshot.",
		Buckets: prometheus.DefBuckets,
	}, []string{"collection"})
	reg.MustRegister(writeSuccess, writeFailure, fallbacks, snapshotLag)
	return &SyncMetrics{
		writeSuccess: writeSuccess,
		writeFailure: writeFailure,
		fallbacks:    fallbacks,
		snapshotLag:  snapshotLag,
	}
}

// IncWriteSuccess increments the acknowledged-write counter.
func (m *SyncMetrics) IncWriteSuccess(collection, op string) {
	if m == nil || m.writeSuccess == nil {
		return
	}
	m.writeSuccess.WithLabelValues(normalizeLabel(collection), normalizeLabel(op)).Inc()
}

// IncWriteFailure increments the rejected-write counter with the error code.
func (m *SyncMetrics) IncWriteFailure(collection, op, code string) {
	if m == nil || m.writeFailure == nil {
		return
	}
	m.writeFailure.WithLabelValues(normalizeLabel(collection), normalizeLabel(op), normalizeLabel(code)).Inc()
}

// IncFallback increments the local-fallback counter.
func (m *SyncMetrics) IncFallback(collection, op string) {
	if m == nil || m.fallbacks == nil {
		return
	}
	m.fallbacks.WithLabelValues(normalizeLabel(collection), normalizeLabel(op)).Inc()
}

// ObserveSnapshot records how long a full collection read took.
func (m *SyncMetrics) ObserveSnapshot(collection string, d time.Duration) {
	if m == nil || m.snapshotLag == nil {
		return
	}
	m.snapshotLag.WithLabelValues(normalizeLabel(collection)).Observe(d.Seconds())
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
