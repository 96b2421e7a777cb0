package order_post

import (
	"encoding/json"
	"net/http"

	"courier-agent/internal/generated/dto"
	"courier-agent/internal/handlers/rest/response"
	"courier-agent/pkg/logger"
)

type Handler struct {
	log        handlerLogger
	controller Controller
}

func New(log handlerLogger, controller Controller) *Handler {
	return &Handler{
		log:        log.With(logger.NewField("handler", "order_post")),
		controller: controller,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req dto.OrderCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, h.log, "invalid JSON body")
		return
	}

	state, err := h.controller.OnCreateOrderRequested(r.Context(), req.Source, req.Destination)
	if err != nil {
		response.Error(w, h.log, err, state, h.controller)
		return
	}

	response.State(w, h.log, http.StatusCreated, state, h.controller)
}
