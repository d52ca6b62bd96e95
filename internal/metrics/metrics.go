package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MessagesSent counts messages durably appended, by content type.
	MessagesSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rapidgigs_chat_messages_sent_total",
		Help: "Messages durably appended to conversations.",
	}, []string{"type"})

	// EventsDelivered counts socket events written to live connections.
	EventsDelivered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rapidgigs_chat_events_delivered_total",
		Help: "Socket events delivered to live connections.",
	}, []string{"event"})

	// EventsDropped counts events that found no live target, which is normal
	// under best-effort delivery.
	EventsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rapidgigs_chat_events_dropped_total",
		Help: "Socket events dropped for lack of a live connection.",
	}, []string{"event"})

	// ActiveConnections tracks currently registered socket connections.
	ActiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rapidgigs_chat_active_connections",
		Help: "Currently registered socket connections.",
	})
)
