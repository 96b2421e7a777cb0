package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"courier-agent/internal/entities"
	"courier-agent/internal/generated/dto"
	"courier-agent/internal/service/session"
	"courier-agent/pkg/logger"
	"github.com/AlekSi/pointer"
)

const msgInternal = "internal error"

func NewState(state entities.SessionState, identity Identity) dto.SessionStateResponse {
	res := dto.SessionStateResponse{
		HasCourier: state.HasCourier,
		HasOrder:   state.HasOrder,
		Tracking:   state.Tracking,
	}
	if id, ok := identity.CourierID(); ok {
		res.CourierID = pointer.ToString(id)
	}
	if id, ok := identity.OrderID(); ok {
		res.OrderID = pointer.ToString(id)
	}
	return res
}

func JSON(w http.ResponseWriter, log responseLogger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("encode JSON response",
			logger.NewField("error", err),
		)
	}
}

func State(w http.ResponseWriter, log responseLogger, status int, state entities.SessionState, identity Identity) {
	JSON(w, log, status, NewState(state, identity))
}

// BadRequest - тело запроса не разобрано, до контроллера дело не дошло.
func BadRequest(w http.ResponseWriter, log responseLogger, message string) {
	JSON(w, log, http.StatusBadRequest, dto.ErrorResponse{Error: message})
}

// Error отвечает на неуспешный триггер. Текущее состояние кладется в ответ,
// чтобы клиенту не нужен был отдельный GET /session.
func Error(w http.ResponseWriter, log responseLogger, err error, state entities.SessionState, identity Identity) {
	status, message := StatusFromError(err)
	if status >= http.StatusInternalServerError {
		log.Warn("control API trigger failed",
			logger.NewField("status", status),
			logger.NewField("error", err),
		)
	}

	current := NewState(state, identity)
	JSON(w, log, status, dto.ErrorResponse{
		Error: message,
		State: &current,
	})
}

// StatusFromError: ошибки сессии - ошибки клиента, ошибки tracking API - 502
// с сообщением, пригодным для показа курьеру.
func StatusFromError(err error) (int, string) {
	var gwErr *entities.GatewayError
	switch {
	case errors.Is(err, session.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, session.ErrPrecondition),
		errors.Is(err, session.ErrConcurrentOperation):
		return http.StatusConflict, err.Error()
	case errors.As(err, &gwErr):
		return http.StatusBadGateway, gwErr.Message
	case errors.Is(err, session.ErrPersistence):
		return http.StatusInternalServerError, err.Error()
	default:
		return http.StatusInternalServerError, msgInternal
	}
}
