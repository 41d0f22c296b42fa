package middleware

import (
	"log/slog"
	"net/http"

	"github.com/knightempire/e-commerce-frontend/pkg/logger"
)

// SessionHeader identifies the shopper session that owns a cart and wishlist.
const SessionHeader = "X-Session-ID"

// RequestLogger stores a logger enriched with correlation_id, session_id,
// trace_id and span_id in the request context; handlers read it back with
// logger.FromContext. Mount it after RequestLogging and Tracing.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if sessionID := r.Header.Get(SessionHeader); sessionID != "" {
				ctx = logger.WithSessionID(ctx, sessionID)
			}

			ctx = logger.NewContext(ctx, logger.WithContext(ctx, base))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
