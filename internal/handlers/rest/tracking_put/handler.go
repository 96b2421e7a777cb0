package tracking_put

import (
	"encoding/json"
	"net/http"

	"courier-agent/internal/entities"
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
		log:        log.With(logger.NewField("handler", "tracking_put")),
		controller: controller,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req dto.TrackingUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, h.log, "invalid JSON body")
		return
	}
	if req.Active == nil {
		response.BadRequest(w, h.log, "field active is required")
		return
	}

	var (
		state entities.SessionState
		err   error
	)
	if *req.Active {
		state, err = h.controller.OnStartTracking(r.Context())
	} else {
		state, err = h.controller.OnStopTracking(r.Context())
	}
	if err != nil {
		response.Error(w, h.log, err, state, h.controller)
		return
	}

	response.State(w, h.log, http.StatusOK, state, h.controller)
}
