package courier_delete

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
		log:        log.With(logger.NewField("handler", "courier_delete")),
		controller: controller,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	state, err := h.controller.OnUnregisterRequested(r.Context())
	if err != nil {
		response.Error(w, h.log, err, state, h.controller)
		return
	}

	response.State(w, h.log, http.StatusOK, state, h.controller)
}
