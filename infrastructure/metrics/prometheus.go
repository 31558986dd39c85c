// Package metrics provides Prometheus metrics for monitoring the gate.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"x402-gate/domain/interfaces"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Protocol counters
	challengesIssued *prometheus.CounterVec
	paymentsVerified *prometheus.CounterVec
	paymentsRejected *prometheus.CounterVec
	contentUnlocked  *prometheus.CounterVec
	clientErrors     prometheus.Counter

	// Verification latency
	verifyDuration prometheus.Histogram

	// Job store state
	activeJobs prometheus.Gauge
	sweptJobs  prometheus.Counter
}

// NewMetrics creates a new Metrics instance registered on the given
// registerer. Tests pass a fresh registry to avoid duplicate registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		challengesIssued: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "x402_gate_challenges_issued_total",
				Help: "Total number of 402 payment challenges issued",
			},
			[]string{"content_type"},
		),
		paymentsVerified: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "x402_gate_payments_verified_total",
				Help: "Total number of payments verified on-chain",
			},
			[]string{"content_type"},
		),
		paymentsRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "x402_gate_payments_rejected_total",
				Help: "Total number of payment proofs rejected",
			},
			[]string{"content_type"},
		),
		contentUnlocked: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "x402_gate_content_unlocked_total",
				Help: "Total number of fulfilled content requests",
			},
			[]string{"content_type"},
		),
		clientErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "x402_gate_client_errors_total",
				Help: "Total number of 400-class request rejections",
			},
		),
		verifyDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "x402_gate_verify_duration_seconds",
				Help:    "Duration of on-chain payment verification",
				Buckets: prometheus.DefBuckets,
			},
		),
		activeJobs: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "x402_gate_jobs_active",
				Help: "Number of payment jobs currently held by the store",
			},
		),
		sweptJobs: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "x402_gate_jobs_swept_total",
				Help: "Total number of expired jobs evicted by the sweeper",
			},
		),
	}
}

// Exporter provides the metrics recording surface used by the HTTP layer
// and the sweeper.
type Exporter struct {
	metrics *Metrics
	logger  interfaces.Logger
}

// NewExporter creates a new metrics exporter.
func NewExporter(reg prometheus.Registerer, logger interfaces.Logger) *Exporter {
	return &Exporter{
		metrics: NewMetrics(reg),
		logger:  logger,
	}
}

// ChallengeIssued records an issued 402 challenge.
func (e *Exporter) ChallengeIssued(contentType string) {
	e.metrics.challengesIssued.WithLabelValues(contentType).Inc()
}

// PaymentVerified records a successful on-chain verification.
func (e *Exporter) PaymentVerified(contentType string) {
	e.metrics.paymentsVerified.WithLabelValues(contentType).Inc()
}

// PaymentRejected records a rejected payment proof.
func (e *Exporter) PaymentRejected(contentType string) {
	e.metrics.paymentsRejected.WithLabelValues(contentType).Inc()
}

// ContentUnlocked records a fulfilled content request.
func (e *Exporter) ContentUnlocked(contentType string) {
	e.metrics.contentUnlocked.WithLabelValues(contentType).Inc()
}

// ClientError records a 400-class rejection.
func (e *Exporter) ClientError() {
	e.metrics.clientErrors.Inc()
}

// ObserveVerifyDuration records the duration of one verification.
func (e *Exporter) ObserveVerifyDuration(seconds float64) {
	e.metrics.verifyDuration.Observe(seconds)
}

// RecordSweep records the outcome of one sweep pass.
func (e *Exporter) RecordSweep(evicted, remaining int) {
	e.metrics.sweptJobs.Add(float64(evicted))
	e.metrics.activeJobs.Set(float64(remaining))
}
