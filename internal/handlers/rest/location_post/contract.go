//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=location_post_test
package location_post

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
	OnLocationSample(ctx context.Context, sample entities.LocationSample) (entities.SessionState, error)
	CourierID() (string, bool)
	OrderID() (string, bool)
}
