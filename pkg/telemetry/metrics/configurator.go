// Package metrics exposes the configurator's Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "configurator"

// Metrics holds every collector the configurator records into. Collectors
// are registered on construction; pass prometheus.DefaultRegisterer outside
// of tests.
type Metrics struct {
	Evaluations        *prometheus.CounterVec
	RulesApplied       *prometheus.CounterVec
	EvaluationDuration *prometheus.HistogramVec
	PriceCalculations  prometheus.Counter
	PriceDuration      prometheus.Histogram
	ValidationFailures *prometheus.CounterVec
	ActiveSessions     prometheus.Gauge
	SessionsExpired    prometheus.Counter
}

// New registers the configurator collectors with reg and returns them.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Evaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rule_evaluations_total",
			Help:      "Rule evaluation passes, per catalog.",
		}, []string{"catalog"}),

		RulesApplied: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rules_applied_total",
			Help:      "Rules whose condition matched during evaluation, per catalog.",
		}, []string{"catalog"}),

		EvaluationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rule_evaluation_duration_seconds",
			Help:      "Latency of one full rule evaluation pass.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
		}, []string{"catalog"}),

		PriceCalculations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "price_calculations_total",
			Help:      "Price breakdown calculations.",
		}),

		PriceDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "price_calculation_duration_seconds",
			Help:      "Latency of one price breakdown calculation.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
		}),

		ValidationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Validation errors raised, per issue code.",
		}, []string{"code"}),

		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Configuration sessions currently active.",
		}),

		SessionsExpired: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_expired_total",
			Help:      "Sessions expired by the retention sweeper.",
		}),
	}
}
