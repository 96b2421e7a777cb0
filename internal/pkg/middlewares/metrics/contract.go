package metrics

import "courier-agent/pkg/logger"

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
}
