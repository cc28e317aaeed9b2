package ledger

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	statusSuccess  = "success"
	statusFailed   = "failed"
	statusRejected = "rejected"
)

// Metrics counts processed transactions and collected fees.
type Metrics struct {
	transactions *prometheus.CounterVec
	fees         prometheus.Counter
	accounts     prometheus.Gauge
}

// NewMetrics creates unregistered ledger collectors.
func NewMetrics() *Metrics {
	return &Metrics{
		transactions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "custody",
				Subsystem: "ledger",
				Name:      "transactions_total",
				Help:      "Transactions handled by the ledger, by outcome.",
			},
			[]string{"status"},
		),
		fees: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "custody",
				Subsystem: "ledger",
				Name:      "fees_lamports_total",
				Help:      "Signature fees charged, in lamports.",
			},
		),
		accounts: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "custody",
				Subsystem: "ledger",
				Name:      "accounts",
				Help:      "Accounts currently stored.",
			},
		),
	}
}

// Register adds every collector to registerer. Collectors already
// registered are left in place.
func (m *Metrics) Register(registerer prometheus.Registerer) error {
	for _, collector := range []prometheus.Collector{m.transactions, m.fees, m.accounts} {
		if err := registerer.Register(collector); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			return err
		}
	}
	return nil
}

func (l *Ledger) recordRejected(result Result, err error) {
	if l.metrics != nil {
		l.metrics.transactions.WithLabelValues(statusRejected).Inc()
	}
	l.logger.Warn().
		Err(err).
		Str("signature", result.Signature.String()).
		Msg("transaction rejected")
}

func (l *Ledger) recordProcessed(result Result) {
	status := statusSuccess
	if result.Err != nil {
		status = statusFailed
	}
	if l.metrics != nil {
		l.metrics.transactions.WithLabelValues(status).Inc()
		l.metrics.fees.Add(float64(result.Fee))
		l.metrics.accounts.Set(float64(len(l.accounts)))
	}

	for _, line := range result.Logs {
		l.logger.Trace().Str("signature", result.Signature.String()).Msg(line)
	}

	event := l.logger.Debug()
	if result.Err != nil {
		event = l.logger.Warn().Err(result.Err)
	}
	event.
		Str("signature", result.Signature.String()).
		Uint64("slot", result.Slot).
		Uint64("fee", result.Fee).
		Str("status", status).
		Msg("transaction processed")
}
