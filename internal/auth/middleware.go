package auth

import (
	"context"
	"net/http"

	"github.com/sakif/tutoring-admin/internal/model"
)

// contextKey is an unexported type used for context keys in this package.
// A package-private key type means only this package can read or write the
// authenticated user in a request context — no other package can collide
// with or shadow it.
type contextKey string

const userKey contextKey = "user"

// SessionValidator resolves a session token into the owning user.
// Implemented by service.AuthService; declared here (at the point of use)
// so the middleware doesn't import the service package.
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (*model.Session, *model.User, error)
}

// RequireSession is the middleware that enforces authentication on data
// endpoints.
//
// This is the AUTHORITATIVE tier of the two-tier model: the edge's route
// guard only checks that a cookie named session_token exists, which keeps
// page navigation free of network calls but lets a stale or forged cookie
// through. Every request that can touch data lands here, where the token
// is looked up in the session store and expiry is enforced. A cookie that
// fooled the guard dies on this check.
//
// On success the full user record is stored in the request context for
// handlers to read via UserFromContext. On failure: 401, request stopped,
// no side effects.
func RequireSession(sessions SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				unauthorized(w)
				return
			}

			_, user, err := sessions.ValidateSession(r.Context(), cookie.Value)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext retrieves the authenticated user set by RequireSession.
// Returns (nil, false) on anonymous requests — which on a RequireSession
// route means something is miswired, so handlers treat it as a 401.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	u, ok := ctx.Value(userKey).(*model.User)
	return u, ok && u != nil
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"unauthorized","message":"valid session required"}`))
}
