package healthcheck_head

import (
	"net/http"
	"sync/atomic"
)

// Handler: 503 с момента получения сигнала, чтобы супервизор на устройстве
// перестал слать запросы раньше, чем закроется листенер.
type Handler struct {
	isShuttingDown *atomic.Bool
}

func New(isShuttingDown *atomic.Bool) *Handler {
	return &Handler{
		isShuttingDown: isShuttingDown,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	if h.isShuttingDown.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
