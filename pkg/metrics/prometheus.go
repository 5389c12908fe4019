package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	pulseScore     prometheus.Gauge
	fallbacks      *prometheus.CounterVec
	postsGenerated *prometheus.CounterVec
	upstreamTotal  *prometheus.CounterVec
	upstreamTime   *prometheus.HistogramVec
	errorsTotal    *prometheus.CounterVec
	latency        *prometheus.HistogramVec
}

// New creates a Prometheus metrics recorder registered on reg.
// A nil reg uses the default registry served on /metrics.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Recorder{
		pulseScore: factory.NewGauge(prometheus.GaugeOpts{
			Name: "argpulse_pulse_score",
			Help: "Last computed Pulse Score (0-100)",
		}),
		fallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "argpulse_pulse_fallback_total",
				Help: "Pulse computations that returned a fallback result",
			},
			[]string{"reason"},
		),
		postsGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "argpulse_analysis_generated_total",
				Help: "Daily analysis posts generated, by sentiment",
			},
			[]string{"sentiment"},
		),
		upstreamTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "argpulse_upstream_requests_total",
				Help: "Upstream feed requests by outcome",
			},
			[]string{"feed", "outcome"},
		),
		upstreamTime: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "argpulse_upstream_duration_seconds",
				Help:    "Upstream feed request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"feed"},
		),
		errorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "argpulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "argpulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordPulseScore records the latest score.
func (r *Recorder) RecordPulseScore(score float64) {
	r.pulseScore.Set(score)
}

// RecordFallback records a degraded pulse result.
func (r *Recorder) RecordFallback(reason string) {
	r.fallbacks.WithLabelValues(reason).Inc()
}

// RecordPostGenerated records a generated daily post.
func (r *Recorder) RecordPostGenerated(sentiment string) {
	r.postsGenerated.WithLabelValues(sentiment).Inc()
}

// RecordUpstream records one upstream call.
func (r *Recorder) RecordUpstream(feed string, seconds float64, ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	r.upstreamTotal.WithLabelValues(feed, outcome).Inc()
	r.upstreamTime.WithLabelValues(feed).Observe(seconds)
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// Nop discards every measurement.
type Nop struct{}

func (Nop) RecordPulseScore(float64)             {}
func (Nop) RecordFallback(string)                {}
func (Nop) RecordPostGenerated(string)           {}
func (Nop) RecordUpstream(string, float64, bool) {}
func (Nop) RecordError(string)                   {}
func (Nop) RecordLatency(string, float64)        {}
