package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	apperrors "coworking/internal/errors"
	"coworking/internal/logger"
	"coworking/internal/response"
)

// Recovery turns a handler panic into a 500 envelope. It must run in the goroutine
// that serves the handler, so it sits inside RequestTimeout.
func Recovery(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if p := recover(); p != nil {
					if p == http.ErrAbortHandler {
						panic(p)
					}
					log.Error("Panic recovered",
						"request_id", RequestID(r.Context()),
						"error", p,
						"method", r.Method,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)
					response.Error(w, apperrors.Internal(fmt.Errorf("panic: %v", p)))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
