//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=controller_test
package controller

import (
	"context"

	"courier-agent/internal/entities"
	"courier-agent/pkg/logger"
)

type controllerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
}

type SessionManager interface {
	Register(ctx context.Context, name string, phone *string) (*entities.Courier, error)
	Unregister(ctx context.Context) error
	CreateOrder(ctx context.Context, source, destination string) (*entities.Order, error)
	CompleteOrder(ctx context.Context) (*entities.Order, error)
	State() entities.SessionState
	Courier() (entities.Courier, bool)
	OrderID() (string, bool)
}

type LocationReporter interface {
	Start(ctx context.Context)
	Stop()
	Active() bool
	Submit(sample entities.LocationSample)
}

// Observer получает изменения состояния сессии синхронно, сразу после перехода.
type Observer interface {
	OnStateChange(ctx context.Context, change entities.StateChange) error
}
