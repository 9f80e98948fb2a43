package metrics

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type TransactionMetrics struct {
	SubmittedTotal metrics.Counter
	Pending        metrics.Gauge
}

func (m *TransactionMetrics) AddAccepted() {
	m.SubmittedTotal.With(TransactionStatus, TransactionStatusAccepted).Add(1)
}

func (m *TransactionMetrics) AddRejected() {
	m.SubmittedTotal.With(TransactionStatus, TransactionStatusRejected).Add(1)
}

// SetPending sets the number of transactions waiting for the next block.
func (m *TransactionMetrics) SetPending(n int) {
	m.Pending.Set(float64(n))
}

func PromTransactionMetrics() *TransactionMetrics {
	return &TransactionMetrics{
		SubmittedTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: TransactionSubsystem,
			Name:      "submitted_total",
			Help:      "Total number of submitted transactions.",
		}, []string{TransactionStatus}),
		Pending: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: TransactionSubsystem,
			Name:      "pending",
			Help:      "Number of transactions waiting for the next block.",
		}, []string{}),
	}
}

func NopTransactionMetrics() *TransactionMetrics {
	return &TransactionMetrics{
		SubmittedTotal: discard.NewCounter(),
		Pending:        discard.NewGauge(),
	}
}
