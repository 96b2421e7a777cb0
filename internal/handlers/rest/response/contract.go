package response

import "courier-agent/pkg/logger"

type responseLogger interface {
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
}

// Identity отдает идентификаторы текущей сессии для ответа.
type Identity interface {
	CourierID() (string, bool)
	OrderID() (string, bool)
}
