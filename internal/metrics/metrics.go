// internal/metrics/metrics.go
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Word outcomes on the receive path.
const (
	OutcomeOK        = "ok"
	OutcomeParity    = "parity"
	OutcomeUnmatched = "unmatched"
	OutcomeInvalid   = "invalid"
)

// Word outcomes on the transmit path.
const (
	OutcomeSent     = "sent"
	OutcomeDeclined = "declined"
	OutcomeError    = "error"
)

// Snapshot delivery sinks.
const (
	SinkModbus = "modbus"
	SinkStatus = "status"
	SinkNATS   = "nats"
)

// Metrics holds the bridge collectors. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	WordsReceived    *prometheus.CounterVec
	WordsTransmitted *prometheus.CounterVec
	DeliveryErrors   *prometheus.CounterVec

	BusFailed    *prometheus.GaugeVec
	FailureCount *prometheus.GaugeVec
	LabelsValid  *prometheus.GaugeVec
}

// New creates the collectors under namespace. They are not registered.
func New(namespace string) *Metrics {
	return &Metrics{
		WordsReceived: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "rx",
				Name:      "words_total",
				Help:      "Words drained from the receiver by outcome (ok, parity, unmatched, invalid)",
			},
			[]string{"bus", "outcome"},
		),

		WordsTransmitted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "tx",
				Name:      "words_total",
				Help:      "Transmit attempts by outcome (sent, declined, error)",
			},
			[]string{"bus", "outcome"},
		),

		DeliveryErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "delivery",
				Name:      "errors_total",
				Help:      "Failed snapshot deliveries by sink",
			},
			[]string{"bus", "sink"},
		),

		BusFailed: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "bus",
				Name:      "failed",
				Help:      "Bus failure state (0=receiving, 1=failed)",
			},
			[]string{"bus"},
		),

		FailureCount: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "bus",
				Name:      "failure_ticks",
				Help:      "Scheduler ticks since the last good word",
			},
			[]string{"bus"},
		),

		LabelsValid: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "bus",
				Name:      "labels_valid",
				Help:      "Labels currently fresh, not babbling and in bounds",
			},
			[]string{"bus"},
		),
	}
}

// Register adds every collector to reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		m.WordsReceived,
		m.WordsTransmitted,
		m.DeliveryErrors,
		m.BusFailed,
		m.FailureCount,
		m.LabelsValid,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Handler serves g in the Prometheus exposition format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

func (m *Metrics) Received(bus, outcome string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.WordsReceived.WithLabelValues(bus, outcome).Add(float64(n))
}

func (m *Metrics) Transmitted(bus, outcome string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.WordsTransmitted.WithLabelValues(bus, outcome).Add(float64(n))
}

func (m *Metrics) DeliveryError(bus, sink string) {
	if m == nil {
		return
	}
	m.DeliveryErrors.WithLabelValues(bus, sink).Inc()
}

// SetBus publishes the failure tracker and label validity of one bus.
func (m *Metrics) SetBus(bus string, failed bool, failureCount uint32, labelsValid int) {
	if m == nil {
		return
	}
	v := 0.0
	if failed {
		v = 1
	}
	m.BusFailed.WithLabelValues(bus).Set(v)
	m.FailureCount.WithLabelValues(bus).Set(float64(failureCount))
	m.LabelsValid.WithLabelValues(bus).Set(float64(labelsValid))
}
