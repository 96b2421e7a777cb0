//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_complete_post_test
package order_complete_post

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
	OnCompleteOrderRequested(ctx context.Context) (entities.SessionState, error)
	CourierID() (string, bool)
	OrderID() (string, bool)
}
