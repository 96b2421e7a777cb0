package session_state

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var SessionState = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "courier_session_state",
		Help: "Current courier session flags (1 - set, 0 - not set)",
	},
	[]string{"flag"},
)
