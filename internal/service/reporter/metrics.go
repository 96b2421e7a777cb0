package reporter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultOK       = "ok"
	resultError    = "error"
	resultCanceled = "canceled"

	reasonOverflow  = "overflow"
	reasonNoCourier = "no_courier"
	reasonThreshold = "threshold"
	reasonStopped   = "stopped"
)

var LocationReportsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "location_reports_total",
		Help: "Location reports sent to the tracking API",
	},
	[]string{"result"},
)

var LocationSamplesDroppedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "location_samples_dropped_total",
		Help: "Location samples dropped before reaching the tracking API",
	},
	[]string{"reason"},
)
