package session_events

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var SessionEventsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "session_events_published_total",
		Help: "Total number of session state change events sent to Kafka",
	},
	[]string{"trigger", "result"},
)
