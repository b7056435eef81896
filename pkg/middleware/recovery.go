package middleware

import (
	"net/http"
	"runtime/debug"

	httputil "roomgrid/pkg/http"
	apperrors "roomgrid/pkg/errors"
	"roomgrid/pkg/logger"
)

func Recovery(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.Error("Panic recovered",
						"request_id", RequestIDFromContext(r.Context()),
						"error", err,
						"method", r.Method,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)

					_ = httputil.WriteError(w, apperrors.Internal("panic while serving request", nil))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
