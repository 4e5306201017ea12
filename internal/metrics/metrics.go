// Package metrics provides Prometheus metrics for the matchup service.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/arbitrage"
	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/teams"
)

// Calculation results recorded by ObserveArbitrage and ObserveHedge
const (
	ResultArbitrage   = "arbitrage"
	ResultNoArbitrage = "no_arbitrage"
	ResultLocked      = "locked"
	ResultReduced     = "reduced"
	ResultInvalid     = "invalid"
	ResultError       = "error"
)

// Metrics collects and exposes service metrics on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	CalculationsTotal *prometheus.CounterVec
	ArbitrageMargin   prometheus.Histogram
	ResolutionsTotal  *prometheus.CounterVec
	MatchupsTotal     *prometheus.CounterVec
	TrackedBets       prometheus.Gauge

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them, along with Go runtime and process collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,

		CalculationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gameday_calculations_total",
				Help: "Arbitrage and hedge calculations by kind and result",
			},
			[]string{"kind", "result"},
		),
		ArbitrageMargin: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "gameday_arbitrage_margin_pct",
				Help:    "Profit margin of detected arbitrage opportunities in percent",
				Buckets: []float64{0.25, 0.5, 1, 2, 3, 5, 7.5, 10, 15, 25},
			},
		),
		ResolutionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gameday_team_resolutions_total",
				Help: "Team name lookups by outcome",
			},
			[]string{"outcome"},
		),
		MatchupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gameday_matchups_built_total",
				Help: "Matchup views built, by win probability source",
			},
			[]string{"source"},
		),
		TrackedBets: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "gameday_tracked_bets",
				Help: "Bets currently stored for hedge tracking",
			},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gameday_http_requests_total",
				Help: "HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gameday_http_request_duration_seconds",
				Help:    "HTTP request latency by route",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
			},
			[]string{"route"},
		),
	}

	registry.MustRegister(
		m.CalculationsTotal,
		m.ArbitrageMargin,
		m.ResolutionsTotal,
		m.MatchupsTotal,
		m.TrackedBets,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveArbitrage records the outcome of an arbitrage calculation
func (m *Metrics) ObserveArbitrage(r arbitrage.Result, err error) {
	switch {
	case err != nil:
		m.CalculationsTotal.WithLabelValues("arbitrage", errorResult(err)).Inc()
	case r.ArbitrageExists:
		m.CalculationsTotal.WithLabelValues("arbitrage", ResultArbitrage).Inc()
		m.ArbitrageMargin.Observe(r.ProfitMarginPct)
	default:
		m.CalculationsTotal.WithLabelValues("arbitrage", ResultNoArbitrage).Inc()
	}
}

// ObserveHedge records the outcome of a hedge calculation
func (m *Metrics) ObserveHedge(p arbitrage.HedgePlan, err error) {
	switch {
	case err != nil:
		m.CalculationsTotal.WithLabelValues("hedge", errorResult(err)).Inc()
	case p.Locked:
		m.CalculationsTotal.WithLabelValues("hedge", ResultLocked).Inc()
	default:
		m.CalculationsTotal.WithLabelValues("hedge", ResultReduced).Inc()
	}
}

// ObserveResolution records how a team query resolved
func (m *Metrics) ObserveResolution(kind teams.MatchKind) {
	outcome := string(kind)
	if kind == teams.MatchNone {
		outcome = "miss"
	}
	m.ResolutionsTotal.WithLabelValues(outcome).Inc()
}

// ObserveMatchup records a built matchup by where its win probability came from
func (m *Metrics) ObserveMatchup(source string) {
	m.MatchupsTotal.WithLabelValues(source).Inc()
}

// ObserveRequest records one HTTP request
func (m *Metrics) ObserveRequest(route string, code int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.HTTPRequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func errorResult(err error) string {
	if errors.Is(err, arbitrage.ErrInvalidInput) {
		return ResultInvalid
	}
	return ResultError
}
