package light

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

const (
	// MetricsSubsystem is a subsystem shared by all metrics exposed by this
	// package.
	MetricsSubsystem = "light"
)

// Metrics contains metrics exposed by this package.
type Metrics struct {
	// Latest trusted height.
	TrustedHeight metrics.Gauge
	// Number of proof requests submitted to the gateway.
	RequestsSubmitted metrics.Counter
	// Number of fulfillments applied.
	FulfillmentsAccepted metrics.Counter
	// Number of fulfillments rejected before any state change.
	FulfillmentsRejected metrics.Counter
}

// PrometheusMetrics returns Metrics built using the Prometheus client library.
// Optionally, labels can be provided along with their values ("foo",
// "fooValue").
func PrometheusMetrics(namespace string, labelsAndValues ...string) *Metrics {
	labels := []string{}
	for i := 0; i < len(labelsAndValues); i += 2 {
		labels = append(labels, labelsAndValues[i])
	}
	return &Metrics{
		TrustedHeight: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "trusted_height",
			Help:      "Latest trusted height of the tracked chain.",
		}, labels).With(labelsAndValues...),
		RequestsSubmitted: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "requests_submitted",
			Help:      "Number of proof requests submitted to the gateway.",
		}, append(labels, "kind")).With(labelsAndValues...),
		FulfillmentsAccepted: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "fulfillments_accepted",
			Help:      "Number of fulfillments applied to the store.",
		}, append(labels, "kind")).With(labelsAndValues...),
		FulfillmentsRejected: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "fulfillments_rejected",
			Help:      "Number of fulfillments rejected with no state change.",
		}, append(labels, "reason")).With(labelsAndValues...),
	}
}

// NopMetrics returns no-op Metrics.
func NopMetrics() *Metrics {
	return &Metrics{
		TrustedHeight:        discard.NewGauge(),
		RequestsSubmitted:    discard.NewCounter(),
		FulfillmentsAccepted: discard.NewCounter(),
		FulfillmentsRejected: discard.NewCounter(),
	}
}
