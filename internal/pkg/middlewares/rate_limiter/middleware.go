package rate_limiter

import (
	"net/http"
	"strconv"

	"courier-agent/pkg/logger"
	"github.com/gorilla/mux"
)

const rateLimitedBody = `{"error":"rate limit exceeded, try again later"}`

// Middleware защищает control API от залипшего клиента на устройстве
// (например, сенсор шлет точки в цикле без паузы).
func Middleware(log handlerLogger, rateLimiterQPS int, limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter.Allow() {
				next.ServeHTTP(w, r)
				return
			}

			handlerPath := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if template, err := route.GetPathTemplate(); err == nil {
					handlerPath = template
				}
			}

			log.Warn("rate limit exceeded",
				logger.NewField("method", r.Method),
				logger.NewField("route", handlerPath),
				logger.NewField("remote_addr", r.RemoteAddr),
			)

			RateLimitExceededTotal.WithLabelValues(r.Method, handlerPath).Inc()

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rateLimiterQPS))
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)

			if _, err := w.Write([]byte(rateLimitedBody)); err != nil {
				log.Error("failed to write rate limit response",
					logger.NewField("error", err),
					logger.NewField("path", r.URL.Path),
				)
			}
		})
	}
}
