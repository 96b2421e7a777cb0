//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=courier_delete_test
package courier_delete

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
	OnUnregisterRequested(ctx context.Context) (entities.SessionState, error)
	CourierID() (string, bool)
	OrderID() (string, bool)
}
