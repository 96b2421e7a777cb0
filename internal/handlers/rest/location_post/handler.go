package location_post

import (
	"encoding/json"
	"net/http"

	"courier-agent/internal/entities"
	"courier-agent/internal/generated/dto"
	"courier-agent/internal/handlers/rest/response"
	"courier-agent/pkg/logger"
	"github.com/AlekSi/pointer"
)

type Handler struct {
	log        handlerLogger
	controller Controller
}

func New(log handlerLogger, controller Controller) *Handler {
	return &Handler{
		log:        log.With(logger.NewField("handler", "location_post")),
		controller: controller,
	}
}

// ServeHTTP ставит точку в очередь репортера и сразу отвечает 202:
// отправка в tracking API идет асинхронно.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req dto.LocationSampleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, h.log, "invalid JSON body")
		return
	}
	if err := validateSample(req); err != nil {
		response.BadRequest(w, h.log, err.Error())
		return
	}

	sample := entities.LocationSample{
		Lat:        *req.Lat,
		Lon:        *req.Lon,
		CapturedAt: pointer.GetTime(req.CapturedAt),
	}

	state, err := h.controller.OnLocationSample(r.Context(), sample)
	if err != nil {
		response.Error(w, h.log, err, state, h.controller)
		return
	}

	response.State(w, h.log, http.StatusAccepted, state, h.controller)
}
