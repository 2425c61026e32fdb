package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "collab_active_sessions",
			Help: "Currently connected sessions",
		},
	)

	ActiveRooms = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "collab_active_rooms",
			Help: "Rooms with at least one member",
		},
	)

	JoinsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "collab_joins_total",
			Help: "Total successful room joins",
		},
	)

	MessagesRelayed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collab_messages_relayed_total",
			Help: "Messages fanned out to rooms",
		},
		[]string{"type"}, // "edit" or "cursor"
	)

	DecodeFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "collab_decode_failures_total",
			Help: "Inbound frames dropped as malformed",
		},
	)

	SessionsPruned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "collab_sessions_pruned_total",
			Help: "Sessions removed after a failed delivery",
		},
	)
)
