package entities

import "fmt"

type GatewayErrorKind string

const (
	GatewayErrorNetwork    GatewayErrorKind = "network"
	GatewayErrorUnexpected GatewayErrorKind = "unexpected"
	GatewayErrorServerGone GatewayErrorKind = "server_gone"
)

func (k GatewayErrorKind) String() string {
	return string(k)
}

// GatewayError - любой неуспех обращения к трекинг-API. Message годится для показа пользователю.
type GatewayError struct {
	Kind    GatewayErrorKind
	Code    int
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("gateway %s (status %d): %s", e.Kind, e.Code, e.Message)
	}
	return fmt.Sprintf("gateway %s: %s", e.Kind, e.Message)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
