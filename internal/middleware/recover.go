// AngelaMos | 2026
// recover.go

package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/angelamos/blog-api/internal/core"
)

// Recover is the top-level panic handler: full detail is logged server-side,
// the caller only ever sees a generic 500 body.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered",
						"panic", rec,
						"method", r.Method,
						"path", r.URL.Path,
						"request_id", GetRequestID(r.Context()),
						"stack", string(debug.Stack()),
					)
					core.JSONError(w, core.NewAppError(
						nil,
						"internal server error",
						http.StatusInternalServerError,
						"INTERNAL",
					))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
