// Package livemetrics instruments the WebSocket fan-out.
package livemetrics

import (
	"github.com/Black-And-White-Club/three-under/internal/observability/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// LiveMetrics records WebSocket client activity.
type LiveMetrics interface {
	ClientConnected()
	ClientDisconnected()
	// RecordDelivered counts a message queued for one client.
	RecordDelivered(topic string)
	// RecordDropped counts a client dropped because its buffer was full.
	RecordDropped()
}

type liveMetrics struct {
	clients   prometheus.Gauge
	delivered *prometheus.CounterVec
	dropped   prometheus.Counter
}

// New registers the live instruments on reg.
func New(reg prometheus.Registerer) LiveMetrics {
	m := &liveMetrics{
		clients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: "live",
			Name:      "clients",
			Help:      "Connected WebSocket clients.",
		}),
		delivered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: "live",
			Name:      "messages_delivered_total",
			Help:      "Messages queued for WebSocket clients.",
		}, []string{"topic"}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: "live",
			Name:      "clients_dropped_total",
			Help:      "Clients disconnected because they could not keep up.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.clients, m.delivered, m.dropped)
	}
	return m
}

func (m *liveMetrics) ClientConnected()             { m.clients.Inc() }
func (m *liveMetrics) ClientDisconnected()          { m.clients.Dec() }
func (m *liveMetrics) RecordDelivered(topic string) { m.delivered.WithLabelValues(topic).Inc() }
func (m *liveMetrics) RecordDropped()               { m.dropped.Inc() }

type noop struct{}

// NewNoop returns LiveMetrics that record nothing.
func NewNoop() LiveMetrics { return noop{} }

func (noop) ClientConnected()       {}
func (noop) ClientDisconnected()    {}
func (noop) RecordDelivered(string) {}
func (noop) RecordDropped()         {}
