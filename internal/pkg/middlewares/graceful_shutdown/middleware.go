package graceful_shutdown

import (
	"context"
	"net/http"
	"sync/atomic"
)

const shuttingDownBody = `{"error":"agent is shutting down"}`

// Middleware отвечает 503 новым запросам, как только начат drain.
// ongoingCtx отменяется после readiness-паузы, isShuttingDown выставляется сразу по сигналу.
func Middleware(isShuttingDown *atomic.Bool, ongoingCtx context.Context) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-ongoingCtx.Done():
				if isShuttingDown.Load() {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusServiceUnavailable)
					_, _ = w.Write([]byte(shuttingDownBody))
					return
				}
			default:
			}
			next.ServeHTTP(w, r)
		})
	}
}
