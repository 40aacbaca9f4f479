package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/workgram/miniapp-server/session"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyIdentity stores the authenticated session identity
const ContextKeyIdentity ContextKey = "identity"

// RequireAuth validates the bearer session token and injects the embedded
// identity into the request context. The two failure classes stay distinct
// for clients: no usable token at all vs. a token that did not validate.
func (s *Server) RequireAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			identity, err := s.authenticator.Authenticate(r.Header.Get("Authorization"))
			switch {
			case errors.Is(err, session.ErrNoToken):
				writeError(w, http.StatusUnauthorized, "no_token", "Missing bearer token")
				return
			case err != nil:
				writeError(w, http.StatusUnauthorized, "invalid_token", "Invalid or expired session token")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyIdentity, identity)
			next(w, r.WithContext(ctx))
		}
	}
}

// IdentityFromContext returns the identity injected by RequireAuth.
func IdentityFromContext(ctx context.Context) (session.Identity, bool) {
	identity, ok := ctx.Value(ContextKeyIdentity).(session.Identity)
	return identity, ok
}
