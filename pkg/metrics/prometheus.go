package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	rowsDropped    *prometheus.CounterVec
	eventsRebuilt  *prometheus.CounterVec
	neutralTotal   prometheus.Counter
	unmatchedJoins *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	latency        *prometheus.HistogramVec
}

// New creates a Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		rowsDropped: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "econpull_rows_dropped_total",
				Help: "Calendar rows dropped during reconstruction",
			},
			[]string{"reason"},
		),
		eventsRebuilt: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "econpull_events_reconstructed_total",
				Help: "Calendar events reconstructed from raw rows",
			},
			[]string{"currency"},
		),
		neutralTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "econpull_neutral_criteria_total",
				Help: "Events whose usual-effect phrase resolved to neutral",
			},
		),
		unmatchedJoins: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "econpull_unmatched_joins_total",
				Help: "Events with no price bar at their truncated timestamp",
			},
			[]string{"pair"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "econpull_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "econpull_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordRowDropped records a dropped calendar row with its reason.
func (r *Recorder) RecordRowDropped(reason string) {
	r.rowsDropped.WithLabelValues(reason).Inc()
}

// RecordEventReconstructed records a reconstructed event by currency.
func (r *Recorder) RecordEventReconstructed(currency string) {
	r.eventsRebuilt.WithLabelValues(currency).Inc()
}

// RecordNeutralCriteria records an event with a neutral usual-effect phrase.
func (r *Recorder) RecordNeutralCriteria() {
	r.neutralTotal.Inc()
}

// RecordUnmatchedJoin records an event without a matching price bar.
func (r *Recorder) RecordUnmatchedJoin(pair string) {
	r.unmatchedJoins.WithLabelValues(pair).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
