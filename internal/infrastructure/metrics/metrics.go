package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	usecasecontract "github.com/mikiasgoitom/likeledger/internal/usecase/contract"
)

// LikeMetrics exposes like toggle and ledger metrics to Prometheus.
type LikeMetrics struct {
	toggles     *prometheus.CounterVec
	ledgerCalls *prometheus.HistogramVec
}

var _ usecasecontract.ILikeMetrics = (*LikeMetrics)(nil)

// NewLikeMetrics creates the collectors and registers them with reg.
func NewLikeMetrics(reg prometheus.Registerer) *LikeMetrics {
	m := &LikeMetrics{
		toggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "likeledger",
			Name:      "toggles_total",
			Help:      "Like and unlike calls by outcome.",
		}, []string{"action", "outcome"}),
		ledgerCalls: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "likeledger",
			Name:      "ledger_call_duration_seconds",
			Help:      "Latency of like ledger store calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	reg.MustRegister(m.toggles, m.ledgerCalls)
	return m
}

// IncToggle counts one like or unlike call.
func (m *LikeMetrics) IncToggle(action, outcome string) {
	m.toggles.WithLabelValues(action, outcome).Inc()
}

// ObserveLedgerCall records the duration of one ledger call.
func (m *LikeMetrics) ObserveLedgerCall(operation string, seconds float64) {
	m.ledgerCalls.WithLabelValues(operation).Observe(seconds)
}
