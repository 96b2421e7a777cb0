package system_metrics

import (
	"context"
	"time"

	"courier-agent/pkg/logger"
)

type SystemMetrics struct {
	log       taskLogger
	collector Collector
	interval  time.Duration
}

func NewSystemMetrics(log taskLogger, collector Collector, interval time.Duration) *SystemMetrics {
	return &SystemMetrics{
		log:       log,
		collector: collector,
		interval:  interval,
	}
}

func (s *SystemMetrics) TTL() time.Duration {
	return s.interval
}

// Do не валит воркер: часть метрик на некоторых устройствах недоступна.
func (s *SystemMetrics) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	if err := s.collector.Collect(ctxWithTimeout); err != nil {
		s.log.Warn("system metrics collected partially",
			logger.NewField("error", err),
		)
	}

	return nil
}

func (s *SystemMetrics) Info() string {
	return "system metrics"
}
