package server

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ayoisaiah/guardian/internal/session"
	"github.com/ayoisaiah/guardian/internal/stats"
)

const namespace = "guardian"

var phases = []session.Phase{
	session.Idle,
	session.Focusing,
	session.Tired,
	session.Resting,
	session.Completed,
	session.Aborted,
}

// Metrics exposes mission activity to Prometheus.
type Metrics struct {
	completed    prometheus.Counter
	aborted      prometheus.Counter
	rests        prometheus.Counter
	focusMinutes prometheus.Counter
	phase        *prometheus.GaugeVec
}

// NewMetrics creates the mission metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		completed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "missions_completed_total",
			Help:      "Number of missions completed.",
		}),
		aborted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "missions_aborted_total",
			Help:      "Number of missions ended early.",
		}),
		rests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rest_periods_total",
			Help:      "Number of rest periods finished.",
		}),
		focusMinutes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "focus_minutes_total",
			Help:      "Minutes of focus from completed missions.",
		}),
		phase: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "phase",
			Help:      "Current mission phase. The active phase is 1.",
		}, []string{"phase"}),
	}

	reg.MustRegister(
		m.completed,
		m.aborted,
		m.rests,
		m.focusMinutes,
		m.phase,
	)

	m.setPhase(session.Idle)

	return m
}

// Hooks returns machine hooks that keep the metrics current.
func (m *Metrics) Hooks() session.Hooks {
	return session.Hooks{
		OnPhaseChange: m.setPhase,
		OnRestComplete: func() {
			m.rests.Inc()
		},
		OnMissionComplete: func(rec stats.MissionRecord) {
			m.completed.Inc()
			m.focusMinutes.Add(float64(rec.DurationMinutes))
		},
		OnMissionAborted: func(stats.MissionRecord) {
			m.aborted.Inc()
		},
	}
}

func (m *Metrics) setPhase(current session.Phase) {
	for _, p := range phases {
		var v float64
		if p == current {
			v = 1
		}

		m.phase.WithLabelValues(string(p)).Set(v)
	}
}
