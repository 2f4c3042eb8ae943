package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Bot Metrics
var (
	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCommandsTotal,
			Help: HelpTextCommandsTotal,
		},
		[]string{LabelCommand, LabelOutcome},
	)

	CommandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameCommandDuration,
			Help:    HelpTextCommandDuration,
			Buckets: ExternalLatencyBuckets,
		},
		[]string{LabelCommand},
	)

	ExternalRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameExternalRequests,
			Help: HelpTextExternalRequests,
		},
		[]string{LabelService, LabelOutcome},
	)

	ExternalDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameExternalDuration,
			Help:    HelpTextExternalDuration,
			Buckets: ExternalLatencyBuckets,
		},
		[]string{LabelService},
	)

	RolesGranted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRolesGranted,
			Help: HelpTextRolesGranted,
		},
		[]string{LabelReason},
	)

	DataReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDataReloads,
			Help: HelpTextDataReloads,
		},
		[]string{LabelOutcome},
	)
)

// RecordExternal counts one outbound call and its latency.
func RecordExternal(service, outcome string, seconds float64) {
	ExternalRequests.WithLabelValues(service, outcome).Inc()
	ExternalDuration.WithLabelValues(service).Observe(seconds)
}

// RecordReload counts one data reload.
func RecordReload(err error) {
	if err != nil {
		DataReloads.WithLabelValues(OutcomeFailure).Inc()
		return
	}
	DataReloads.WithLabelValues(OutcomeSuccess).Inc()
}
