package ping_get

import (
	"net/http"

	"courier-agent/internal/generated/dto"
	"courier-agent/internal/handlers/rest/response"
)

type Handler struct {
	log handlerLogger
}

func New(log handlerLogger) *Handler {
	return &Handler{
		log: log,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	message := "pong"
	response.JSON(w, h.log, http.StatusOK, dto.PingResponse{
		Message: &message,
	})
}
