// Package metrics exposes court session activity as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rpggio/courtroom/internal/domain/court"
)

// Metrics counts court activity on its own registry. It implements
// court.Observer.
type Metrics struct {
	registry *prometheus.Registry

	Transitions    *prometheus.CounterVec
	FeedMessages   *prometheus.CounterVec
	ActiveSessions prometheus.Gauge
	SessionsOpened prometheus.Counter
}

// New creates the collectors and registers them, together with the Go
// runtime and process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "courtroom_task_transitions_total",
			Help: "Task status changes by target status and task.",
		}, []string{"status", "task"}),
		FeedMessages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "courtroom_feed_messages_total",
			Help: "Messages posted to session feeds by source.",
		}, []string{"source"}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "courtroom_active_sessions",
			Help: "Court sessions currently running.",
		}),
		SessionsOpened: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtroom_sessions_opened_total",
			Help: "Court sessions started since process start.",
		}),
	}

	m.registry.MustRegister(
		m.Transitions,
		m.FeedMessages,
		m.ActiveSessions,
		m.SessionsOpened,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) OnTransition(t court.Transition) {
	m.Transitions.WithLabelValues(string(t.To), string(t.Task)).Inc()
}

func (m *Metrics) OnFeed(source court.Source) {
	m.FeedMessages.WithLabelValues(string(source)).Inc()
}

func (m *Metrics) OnSessionOpened() {
	m.SessionsOpened.Inc()
	m.ActiveSessions.Inc()
}

func (m *Metrics) OnSessionClosed() {
	m.ActiveSessions.Dec()
}
