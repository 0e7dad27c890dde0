package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is nil safe: a nil *Metrics records nothing.
type Metrics struct {
	upstreamDuration *prometheus.HistogramVec
	sourceAttempts   *prometheus.CounterVec
	flowTransitions  *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return &Metrics{}
	}

	upstreamDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "marketplace_request_duration_seconds",
		Help:    "Duration of requests made to the marketplace.",
		Buckets: prometheus.DefBuckets,
	}, []string{"name", "code"})
	sourceAttempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_source_attempts_total",
		Help: "Attempts made against dashboard fallback sources.",
	}, []string{"resource", "source", "outcome"})
	flowTransitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_flow_transitions_total",
		Help: "Order composition state transitions.",
	}, []string{"state"})

	reg.MustRegister(upstreamDuration, sourceAttempts, flowTransitions)

	return &Metrics{
		upstreamDuration: upstreamDuration,
		sourceAttempts:   sourceAttempts,
		flowTransitions:  flowTransitions,
	}
}

func (m *Metrics) ObserveUpstreamRequest(name string, code int, duration time.Duration) {
	if m == nil || m.upstreamDuration == nil {
		return
	}
	m.upstreamDuration.WithLabelValues(normalizeLabel(name), strconv.Itoa(code)).Observe(duration.Seconds())
}

// IncSourceAttempt counts one try of a fallback source; outcome is one of
// accepted, rejected or exhausted.
func (m *Metrics) IncSourceAttempt(resource string, source string, outcome string) {
	if m == nil || m.sourceAttempts == nil {
		return
	}
	m.sourceAttempts.WithLabelValues(normalizeLabel(resource), normalizeLabel(source), outcome).Inc()
}

func (m *Metrics) IncFlowTransition(state string) {
	if m == nil || m.flowTransitions == nil {
		return
	}
	m.flowTransitions.WithLabelValues(normalizeLabel(state)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
