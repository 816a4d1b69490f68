package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
)

type ctxKey string

const identityKey ctxKey = "identity"

// Identity is the verified {subject, email} pair attached to the request
// context by BearerAuth. Handlers derive ownership exclusively from it.
type Identity struct {
	UserID string
	Email  string
}

// IdentityFromContext returns the authenticated identity, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// BearerAuth verifies the "Authorization: Bearer <token>" header against the
// access secret and stores the verified identity in the request context.
// Missing, malformed, invalid, and expired tokens all produce the same 401.
func BearerAuth(accessSecret []byte, logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Message: "unauthorized"})
				return
			}

			claims, err := auth.ParseToken(token, accessSecret)
			if err != nil {
				// expired vs invalid stays internal; the response is uniform
				logger.Debug(r.Context(), "access token rejected", "reason", err.Error())
				writeJSON(w, http.StatusUnauthorized, errorResponse{Message: "unauthorized"})
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, Identity{
				UserID: claims.Subject,
				Email:  claims.Email,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithRequestLogging logs each request with its method, path, and duration.
func WithRequestLogging(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Info(r.Context(), "request handled",
				"method", r.Method,
				"path", r.URL.Path,
				"duration", time.Since(start).String(),
			)
		})
	}
}
