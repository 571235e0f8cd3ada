package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	apperrors "hotelier/pkg/errors"
	httputil "hotelier/pkg/httputil"
	"hotelier/pkg/logger"
)

type contextKey string

// UserIDKey carries the authenticated user's ID through the request context.
const UserIDKey contextKey = "auth_user_id"

// Guard wraps individual routes with bearer-token verification. Protection
// is applied per route, not per router: the access-control matrix of this
// API is deliberately uneven and is declared explicitly at registration.
type Guard struct {
	issuer *Issuer
	log    *logger.Logger
}

func NewGuard(issuer *Issuer, log *logger.Logger) *Guard {
	return &Guard{
		issuer: issuer,
		log:    log,
	}
}

// Protect rejects requests without a valid bearer token and otherwise calls
// next with the user ID attached to the context.
func (g *Guard) Protect(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			g.reject(w, r, "missing bearer token")
			return
		}

		userID, err := g.issuer.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			g.reject(w, r, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next(w, r.WithContext(ctx), ps)
	}
}

func (g *Guard) reject(w http.ResponseWriter, r *http.Request, reason string) {
	g.log.Warn("Unauthorized request",
		"method", r.Method,
		"path", r.URL.Path,
		"reason", reason,
	)
	if err := httputil.WriteError(w, apperrors.Unauthorized("Not authorized, token failed")); err != nil {
		g.log.Error("failed to write error response", "handler", "Protect", "error", err)
	}
}

// UserID returns the authenticated user ID stored by Protect, if any.
func UserID(ctx context.Context) string {
	if v := ctx.Value(UserIDKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
