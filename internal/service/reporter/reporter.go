package reporter

import (
	"context"
	"sync"
	"time"

	"courier-agent/internal/entities"
	"courier-agent/pkg/logger"
	"courier-agent/pkg/retrier"
)

// Reporter доставляет точки на сервер строго по порядку поступления:
// один воркер вычитывает ограниченную FIFO-очередь.
type Reporter struct {
	cfg     Config
	gateway Gateway
	session Session
	log     reporterLogger
	retrier retrier.Retrier

	lifecycleMu sync.Mutex
	cancel      context.CancelFunc
	done        chan struct{}

	mu     sync.Mutex
	queue  []entities.LocationSample
	active bool
	notify chan struct{}

	// трогает только воркер
	lastReported *entities.LocationSample
}

func New(cfg Config, gateway Gateway, session Session, log reporterLogger) *Reporter {
	return &Reporter{
		cfg:     cfg,
		gateway: gateway,
		session: session,
		log:     log,
		retrier: cfg.retrier(),
		notify:  make(chan struct{}, 1),
	}
}

// Start запускает воркер. Повторный Start у активного репортера ничего не делает.
func (r *Reporter) Start(ctx context.Context) {
	r.lifecycleMu.Lock()
	defer r.lifecycleMu.Unlock()

	if r.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})

	r.mu.Lock()
	r.active = true
	r.lastReported = nil
	r.mu.Unlock()

	go r.run(ctx, r.done)

	r.log.Info("location reporter started")
}

// Stop останавливает воркер и ждет его. Отправка в полете отменяется через контекст,
// точки из очереди выбрасываются.
func (r *Reporter) Stop() {
	r.lifecycleMu.Lock()
	defer r.lifecycleMu.Unlock()

	if r.cancel == nil {
		return
	}

	r.mu.Lock()
	r.active = false
	pending := len(r.queue)
	r.queue = nil
	r.mu.Unlock()

	r.cancel()
	<-r.done
	r.cancel = nil

	if pending > 0 {
		LocationSamplesDroppedTotal.WithLabelValues(reasonStopped).Add(float64(pending))
	}

	r.log.Info("location reporter stopped", logger.NewField("dropped", pending))
}

func (r *Reporter) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.active
}

// Submit кладет точку в очередь и никогда не блокируется. При переполнении
// выбрасывается самая старая точка.
func (r *Reporter) Submit(sample entities.LocationSample) {
	r.mu.Lock()
	if !r.active {
		r.mu.Unlock()
		LocationSamplesDroppedTotal.WithLabelValues(reasonStopped).Inc()
		return
	}

	if len(r.queue) >= r.cfg.bufferSize() {
		r.queue = r.queue[1:]
		LocationSamplesDroppedTotal.WithLabelValues(reasonOverflow).Inc()
	}
	r.queue = append(r.queue, sample)
	r.mu.Unlock()

	select {
	case r.notify <- struct{}{}:
	default:
	}
}

func (r *Reporter) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.notify:
		}

		for {
			sample, ok := r.pop()
			if !ok {
				break
			}
			if ctx.Err() != nil {
				return
			}
			r.report(ctx, sample)
		}
	}
}

func (r *Reporter) pop() (entities.LocationSample, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.queue) == 0 {
		return entities.LocationSample{}, false
	}

	sample := r.queue[0]
	r.queue = r.queue[1:]
	return sample, true
}

func (r *Reporter) report(ctx context.Context, sample entities.LocationSample) {
	courier, ok := r.session.Courier()
	if !ok {
		LocationSamplesDroppedTotal.WithLabelValues(reasonNoCourier).Inc()
		r.log.Debug("courier is not registered, dropping location sample")
		return
	}

	if r.withinThreshold(sample) {
		LocationSamplesDroppedTotal.WithLabelValues(reasonThreshold).Inc()
		return
	}

	start := time.Now()
	err := r.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		return r.gateway.ReportLocation(ctx, courier.ID, sample.Lat, sample.Lon)
	})
	if err != nil {
		if ctx.Err() != nil {
			LocationReportsTotal.WithLabelValues(resultCanceled).Inc()
			return
		}

		LocationReportsTotal.WithLabelValues(resultError).Inc()
		r.log.Warn("location report failed",
			logger.NewField("courier_id", courier.ID),
			logger.NewField("error", err),
			logger.NewField("duration", time.Since(start)),
		)
		return
	}

	LocationReportsTotal.WithLabelValues(resultOK).Inc()
	r.lastReported = &sample

	if err := r.session.RememberLocation(ctx, courier.ID, sample.Location()); err != nil {
		r.log.Error("remember last known location",
			logger.NewField("courier_id", courier.ID),
			logger.NewField("error", err),
		)
	}
}

// withinThreshold: точка пропускается, только если она близко и по расстоянию, и по времени.
func (r *Reporter) withinThreshold(sample entities.LocationSample) bool {
	if !r.cfg.thresholdEnabled() || r.lastReported == nil {
		return false
	}

	last := r.lastReported
	distance := distanceMeters(last.Lat, last.Lon, sample.Lat, sample.Lon)
	elapsed := sample.CapturedAt.Sub(last.CapturedAt)

	return distance < r.cfg.MinDistanceMeters && elapsed < r.cfg.MinInterval
}
