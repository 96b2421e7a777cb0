//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=tracking_put_test
package tracking_put

import (
	"context"

	"courier-agent/internal/entities"
	"courier-agent/pkg/logger"
)

type handlerLogger interface {
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Controller interface {
	OnStartTracking(ctx context.Context) (entities.SessionState, error)
	OnStopTracking(ctx context.Context) (entities.SessionState, error)
	CourierID() (string, bool)
	OrderID() (string, bool)
}
