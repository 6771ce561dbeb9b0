package httpapi

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/bibe1s/JRSolisPortfolio/internal/server/auth"
)

type ctxKey string

const (
	principalKey ctxKey = "principal"
	requestIDKey ctxKey = "requestID"
)

// RequestID tags every request with a fresh id for log correlation.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// requestID returns the request id from ctx, or "" outside the middleware.
func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// RequireAdmin gates every write-capable route. It runs synchronously before
// any handler work: a rejected request never touches the store or the media
// host. The 401 body is uniform regardless of which sub-check failed.
func (s *Server) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := s.verifier.Authenticate(r.Header.Get("Authorization"))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), principalKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// principalFrom returns the authenticated principal placed by RequireAdmin.
func principalFrom(ctx context.Context) *auth.Principal {
	p, _ := ctx.Value(principalKey).(*auth.Principal)
	return p
}

// principalEmail is principalFrom for log attributes, "" outside the
// middleware.
func principalEmail(ctx context.Context) string {
	if p := principalFrom(ctx); p != nil {
		return p.Email
	}
	return ""
}
