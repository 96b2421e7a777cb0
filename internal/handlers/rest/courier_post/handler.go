package courier_post

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
		log:        log.With(logger.NewField("handler", "courier_post")),
		controller: controller,
	}
}

// ServeHTTP регистрирует курьера. Пустое имя проверяет менеджер сессии,
// здесь только разбор тела.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req dto.CourierCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, h.log, "invalid JSON body")
		return
	}

	state, err := h.controller.OnRegisterRequested(r.Context(), req.Name, req.Phone)
	if err != nil {
		response.Error(w, h.log, err, state, h.controller)
		return
	}

	response.State(w, h.log, http.StatusCreated, state, h.controller)
}
