//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=session_get_test
package session_get

import (
	"courier-agent/internal/entities"
	"courier-agent/pkg/logger"
)

type handlerLogger interface {
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Controller interface {
	State() entities.SessionState
	CourierID() (string, bool)
	OrderID() (string, bool)
}
