// Package metrics exposes Prometheus collectors for cubes sessions.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/cube-arcade/internal/games/cubes/core"
)

var (
	ticksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cubes_ticks_total",
		Help: "Engine ticks committed or remade across all sessions",
	})

	mergesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cubes_merges_total",
		Help: "Cube groups resolved by result",
	}, []string{"result"})

	constraintsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cubes_constraints_total",
		Help: "Cubes constrained during a tick by constraint",
	}, []string{"constraint"})

	levelsSolved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cubes_levels_solved_total",
		Help: "Levels solved by level id",
	}, []string{"level"})

	sessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cubes_sessions_active",
		Help: "Sessions currently connected",
	})

	tickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cubes_tick_duration_seconds",
		Help:    "Time spent computing one engine tick",
		Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
	})
)

// Observer feeds game events into the package collectors.
type Observer struct{}

// TickCommitted records one engine tick and what it resolved.
func (Observer) TickCommitted(_ string, r core.Report, elapsed time.Duration) {
	ticksTotal.Inc()
	tickDuration.Observe(elapsed.Seconds())

	if r.Merged > 0 {
		mergesTotal.WithLabelValues("have").Add(float64(r.Merged))
	}
	if r.Draws > 0 {
		mergesTotal.WithLabelValues("draw").Add(float64(r.Draws))
	}
	addConstraint(core.Stop, r.Stopped)
	addConstraint(core.Lock, r.Locked)
	addConstraint(core.Slap, r.Slapped)
}

func addConstraint(c core.Constraint, n int) {
	if n > 0 {
		constraintsTotal.WithLabelValues(constraintLabel(c)).Add(float64(n))
	}
}

func constraintLabel(c core.Constraint) string {
	switch c {
	case core.Stop:
		return "stop"
	case core.Lock:
		return "lock"
	case core.Slap:
		return "slap"
	default:
		return "free"
	}
}

// LevelSolved counts a solved level.
func (Observer) LevelSolved(level string) {
	levelsSolved.WithLabelValues(level).Inc()
}

// SessionStarted marks a session as connected. The returned func ends it.
func SessionStarted() func() {
	sessionsActive.Inc()
	return sessionsActive.Dec
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
