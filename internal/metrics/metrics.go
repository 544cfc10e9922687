package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

type CheckoutMetrics struct {
	Checkouts *prometheus.CounterVec
	Amount    prometheus.Histogram
}

func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pos",
		Subsystem: "checkout",
		Name:      "attempts_total",
		Help:      "Checkout attempts by outcome.",
	}, []string{"outcome"})
	amount := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "pos",
		Subsystem: "checkout",
		Name:      "amount",
		Help:      "Total charged per successful checkout.",
		Buckets:   []float64{10, 50, 100, 250, 500, 1000, 2500, 5000},
	})

	reg.MustRegister(checkouts, amount)
	return &CheckoutMetrics{Checkouts: checkouts, Amount: amount}
}

func (m *CheckoutMetrics) Observe(outcome string, total decimal.Decimal) {
	if m == nil {
		return
	}
	m.Checkouts.WithLabelValues(outcome).Inc()
	if outcome == "success" {
		m.Amount.Observe(total.InexactFloat64())
	}
}

func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
