package kit

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	labelOp     = "op"
	labelResult = "result"
)

// Metrics counts catalog operations. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	Operations *prometheus.CounterVec
	Products   prometheus.Gauge
}

func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		return nil
	}

	m := &Metrics{
		Operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_operations_total",
				Help: "Catalog operations by outcome",
			},
			[]string{labelOp, labelResult},
		),
		Products: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "catalog_products",
				Help: "Products currently held in the catalog",
			},
		),
	}

	reg.MustRegister(m.Operations, m.Products)
	return m
}

func (m *Metrics) Observe(op, result string) {
	if m == nil {
		return
	}
	m.Operations.WithLabelValues(op, result).Inc()
}

func (m *Metrics) SetProducts(n int) {
	if m == nil {
		return
	}
	m.Products.Set(float64(n))
}
