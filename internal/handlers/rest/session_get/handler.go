package session_get

import (
	"net/http"

	"courier-agent/internal/handlers/rest/response"
	"courier-agent/pkg/logger"
)

type Handler struct {
	log        handlerLogger
	controller Controller
}

func New(log handlerLogger, controller Controller) *Handler {
	return &Handler{
		log:        log.With(logger.NewField("handler", "session_get")),
		controller: controller,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	response.State(w, h.log, http.StatusOK, h.controller.State(), h.controller)
}
