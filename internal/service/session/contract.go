//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=session_test
package session

import (
	"context"
	"time"

	"courier-agent/internal/entities"
	"courier-agent/pkg/logger"
)

type managerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
}

type Gateway interface {
	RegisterCourier(ctx context.Context, name string, phone *string) (*entities.Courier, error)
	UnregisterCourier(ctx context.Context, courierID string) error
	CreateOrder(ctx context.Context, courierID, source, destination string) (*entities.Order, error)
	CompleteOrder(ctx context.Context, courierID, orderID string, deliveredAt time.Time) error
}

type Store interface {
	Load(ctx context.Context) (entities.SessionSnapshot, error)
	SaveCourier(ctx context.Context, courier entities.Courier) error
	ClearCourier(ctx context.Context) error
	SaveOrderID(ctx context.Context, orderID string) error
	ClearOrderID(ctx context.Context) error
}
