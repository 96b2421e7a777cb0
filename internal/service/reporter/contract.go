//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=reporter_test
package reporter

import (
	"context"

	"courier-agent/internal/entities"
	"courier-agent/pkg/logger"
)

type reporterLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
}

type Gateway interface {
	ReportLocation(ctx context.Context, courierID string, lat, lon float64) error
}

type Session interface {
	Courier() (entities.Courier, bool)
	RememberLocation(ctx context.Context, courierID string, location entities.Location) error
}
