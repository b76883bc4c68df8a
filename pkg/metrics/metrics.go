// Package metrics exposes the engine's operational counters in Prometheus
// format. All record methods are nil-safe so callers never guard.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry           *prometheus.Registry
	simulationsTotal   *prometheus.CounterVec
	priceFallbacks     *prometheus.CounterVec
	heuristicsFired    *prometheus.CounterVec
	simulationDuration prometheus.Histogram
	zoneRiskLevel      *prometheus.GaugeVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		simulationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "drought_simulations_total",
			Help: "Total count of simulation runs by zone and outcome.",
		}, []string{"zone", "status"}),
		priceFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "drought_price_fallback_total",
			Help: "Total price resolutions that landed on the static fallback.",
		}, []string{"region"}),
		heuristicsFired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "drought_heuristics_fired_total",
			Help: "Total heuristic rule firings by rule id.",
		}, []string{"rule"}),
		simulationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "drought_simulation_duration_seconds",
			Help:    "Histogram of end-to-end simulation durations.",
			Buckets: prometheus.DefBuckets,
		}),
		zoneRiskLevel: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "drought_zone_risk_level",
			Help: "Current risk severity per zone (0 low, 1 medium, 2 high, 3 critical).",
		}, []string{"zone"}),
	}

	m.registry.MustRegister(
		m.simulationsTotal,
		m.priceFallbacks,
		m.heuristicsFired,
		m.simulationDuration,
		m.zoneRiskLevel,
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) SimulationCompleted(zone, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.simulationsTotal.WithLabelValues(zone, status).Inc()
	m.simulationDuration.Observe(duration.Seconds())
}

func (m *Metrics) PriceFallback(region string) {
	if m == nil {
		return
	}
	if region == "" {
		region = "unknown"
	}
	m.priceFallbacks.WithLabelValues(region).Inc()
}

func (m *Metrics) HeuristicFired(rule string) {
	if m == nil {
		return
	}
	m.heuristicsFired.WithLabelValues(rule).Inc()
}

func (m *Metrics) SetZoneRisk(zone string, severity int) {
	if m == nil {
		return
	}
	m.zoneRiskLevel.WithLabelValues(zone).Set(float64(severity))
}
