package session_state

import (
	"context"
	"time"
)

// SessionStateExporter выставляет флаги сессии в prometheus.
type SessionStateExporter struct {
	controller Controller
	interval   time.Duration
}

func NewSessionStateExporter(controller Controller, interval time.Duration) *SessionStateExporter {
	return &SessionStateExporter{
		controller: controller,
		interval:   interval,
	}
}

func (s *SessionStateExporter) TTL() time.Duration {
	return s.interval
}

func (s *SessionStateExporter) Do(_ context.Context) error {
	state := s.controller.State()

	SessionState.WithLabelValues("has_courier").Set(boolToFloat(state.HasCourier))
	SessionState.WithLabelValues("has_order").Set(boolToFloat(state.HasOrder))
	SessionState.WithLabelValues("tracking").Set(boolToFloat(state.Tracking))

	return nil
}

func (s *SessionStateExporter) Info() string {
	return "session state exporter"
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
