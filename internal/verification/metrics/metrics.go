package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the verification module.
type Metrics struct {
	// Per-stage latencies
	StageLatency *prometheus.HistogramVec

	// Decision outcomes by reason code and direction
	Outcomes *prometheus.CounterVec

	// Fraud flags raised by kind and severity
	FraudFlags *prometheus.CounterVec

	// Time spent waiting on the per-employee lock
	LockWait prometheus.Histogram

	// Attempts that gave up waiting on the per-employee lock
	LockTimeouts prometheus.Counter

	// Overall verification latency including record writes
	VerifyLatency prometheus.Histogram
}

// New creates a Metrics instance with all verification metrics registered.
func New() *Metrics {
	return &Metrics{
		StageLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "attendance_verification_stage_duration_seconds",
			Help:    "Duration of pipeline stages by stage name",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"stage"}), // stage: "liveness", "embed", "match", "geofence", "fraud"

		Outcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "attendance_verification_outcomes_total",
			Help: "Total verification outcomes by reason code and direction",
		}, []string{"outcome", "direction"}),

		FraudFlags: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "attendance_fraud_flags_total",
			Help: "Total fraud flags raised by kind and severity",
		}, []string{"kind", "severity"}),

		LockWait: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "attendance_verification_lock_wait_seconds",
			Help:    "Time spent acquiring the per-employee lock",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 3},
		}),

		LockTimeouts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "attendance_verification_lock_timeouts_total",
			Help: "Total attempts that timed out waiting on the per-employee lock",
		}),

		VerifyLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "attendance_verification_duration_seconds",
			Help:    "Duration of full verification including the record write",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

// ObserveStage records the duration of one pipeline stage.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	if m != nil {
		m.StageLatency.WithLabelValues(stage).Observe(d.Seconds())
	}
}

// IncrementOutcome records one decision outcome.
func (m *Metrics) IncrementOutcome(outcome, direction string) {
	if m != nil {
		m.Outcomes.WithLabelValues(outcome, direction).Inc()
	}
}

// IncrementFlag records one raised fraud flag.
func (m *Metrics) IncrementFlag(kind, severity string) {
	if m != nil {
		m.FraudFlags.WithLabelValues(kind, severity).Inc()
	}
}

// ObserveLockWait records how long the attempt waited for its lock.
func (m *Metrics) ObserveLockWait(d time.Duration) {
	if m != nil {
		m.LockWait.Observe(d.Seconds())
	}
}

// IncrementLockTimeout records one attempt that gave up on its lock.
func (m *Metrics) IncrementLockTimeout() {
	if m != nil {
		m.LockTimeouts.Inc()
	}
}

// ObserveVerifyLatency records the total verification duration.
func (m *Metrics) ObserveVerifyLatency(d time.Duration) {
	if m != nil {
		m.VerifyLatency.Observe(d.Seconds())
	}
}
