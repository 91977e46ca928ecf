package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// OrderMetrics tracks order placement volume and value.
type OrderMetrics struct {
	placed *prometheus.CounterVec
	amount prometheus.Histogram
	lines  prometheus.Histogram
}

// NewOrderMetrics registers the order metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	placed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Orders placed, split by whether the cart was empty.",
	}, []string{"empty_cart"})
	amount := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "order_total_amount",
		Help:    "Order totals at placement.",
		Buckets: []float64{5, 10, 20, 50, 100, 200, 500},
	})
	lines := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "order_lines",
		Help:    "Number of items per placed order.",
		Buckets: []float64{0, 1, 2, 5, 10, 20},
	})
	reg.MustRegister(placed, amount, lines)
	return &OrderMetrics{placed: placed, amount: amount, lines: lines}
}

// ObservePlaced records a committed order.
func (m *OrderMetrics) ObservePlaced(total decimal.Decimal, lineCount int) {
	if m == nil || m.placed == nil {
		return
	}
	m.placed.WithLabelValues(boolLabel(lineCount == 0)).Inc()
	m.amount.Observe(total.InexactFloat64())
	m.lines.Observe(float64(lineCount))
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
