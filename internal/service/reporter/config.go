package reporter

import (
	"errors"
	"time"

	"courier-agent/internal/entities"
	"courier-agent/pkg/retrier"
	"courier-agent/pkg/retrier/backoff_adapter"
)

const (
	DefaultBufferSize = 1024

	retryInitialInterval = 200 * time.Millisecond
	retryMaxInterval     = 5 * time.Second
	retryRandomization   = 0.5
	retryMultiplier      = 2
)

type Config struct {
	BufferSize int

	// порог включается, только если заданы оба значения
	MinDistanceMeters float64
	MinInterval       time.Duration

	// 0 - без ретраев, каждая точка отправляется ровно один раз
	RetryMaxElapsed time.Duration
}

func (c Config) bufferSize() int {
	if c.BufferSize <= 0 {
		return DefaultBufferSize
	}
	return c.BufferSize
}

func (c Config) thresholdEnabled() bool {
	return c.MinDistanceMeters > 0 && c.MinInterval > 0
}

func (c Config) retrier() retrier.Retrier {
	if c.RetryMaxElapsed <= 0 {
		return retrier.Once{}
	}

	return backoff_adapter.New(retrier.Config{
		InitialInterval: retryInitialInterval,
		MaxInterval:     retryMaxInterval,
		MaxElapsedTime:  c.RetryMaxElapsed,
		Randomization:   retryRandomization,
		Multiplier:      retryMultiplier,
		ShouldRetry:     isNetworkError,
	})
}

// ретраим только сетевые сбои: на любой ответ сервера повтор ничего не изменит
func isNetworkError(err error) bool {
	var gwErr *entities.GatewayError
	return errors.As(err, &gwErr) && gwErr.Kind == entities.GatewayErrorNetwork
}
