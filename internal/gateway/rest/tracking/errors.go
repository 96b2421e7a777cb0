package tracking

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"courier-agent/internal/entities"
)

const maxErrorBodyBytes = 512

func networkError(err error) *entities.GatewayError {
	return &entities.GatewayError{
		Kind:    entities.GatewayErrorNetwork,
		Message: err.Error(),
		Err:     err,
	}
}

func unexpectedError(code int, message string, err error) *entities.GatewayError {
	return &entities.GatewayError{
		Kind:    entities.GatewayErrorUnexpected,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func serverGoneError(code int) *entities.GatewayError {
	return &entities.GatewayError{
		Kind:    entities.GatewayErrorServerGone,
		Code:    code,
		Message: "courier is already gone on the server",
	}
}

// statusMessage берет текст ошибки из тела ответа, иначе стандартный текст статуса.
func statusMessage(resp *http.Response) string {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if msg := strings.TrimSpace(string(b)); msg != "" {
		return msg
	}
	return fmt.Sprintf("unexpected response: %s", http.StatusText(resp.StatusCode))
}
