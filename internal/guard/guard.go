// Package guard implements the edge's route guard: the cheap,
// presence-only gate in front of the dashboard pages.
//
// TWO-TIER ACCESS MODEL (deliberate — this is a trust boundary, not a bug):
// This layer checks only that a cookie with the session cookie's NAME
// exists. It never validates the value, so an expired or forged cookie
// passes the guard. That is the point: page navigation stays free of
// network calls, while every request that can actually touch data is
// re-checked authoritatively by auth.RequireSession on the backend (and
// the dashboard shell re-checks via get-session before rendering).
package guard

import (
	"net/http"
	"strings"
)

// Guard redirects browsers based on session-cookie presence.
type Guard struct {
	// CookieName is the session cookie to look for.
	CookieName string
	// LandingPath is the sign-in page ("/").
	LandingPath string
	// ProtectedPrefix marks the gated area ("/dashboard").
	ProtectedPrefix string
}

// Middleware applies the guard's two rules ahead of next:
//
//   - a request under ProtectedPrefix WITHOUT the cookie → redirect to
//     LandingPath
//   - a request for exactly LandingPath WITH the cookie → redirect to
//     ProtectedPrefix
//
// Everything else passes through untouched. Redirects are 307 so the
// browser preserves the method.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hasCookie := g.hasSessionCookie(r)

		if g.isProtected(r.URL.Path) && !hasCookie {
			http.Redirect(w, r, g.LandingPath, http.StatusTemporaryRedirect)
			return
		}

		if r.URL.Path == g.LandingPath && hasCookie {
			http.Redirect(w, r, g.ProtectedPrefix, http.StatusTemporaryRedirect)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// isProtected reports whether path is the protected prefix itself or
// anything under it. A prefix match alone would also capture paths like
// "/dashboardfoo", which are NOT part of the gated area.
func (g *Guard) isProtected(path string) bool {
	if path == g.ProtectedPrefix {
		return true
	}
	return strings.HasPrefix(path, g.ProtectedPrefix+"/")
}

// hasSessionCookie is the presence check: any cookie with the right name
// counts, whatever its value.
func (g *Guard) hasSessionCookie(r *http.Request) bool {
	c, err := r.Cookie(g.CookieName)
	return err == nil && c.Value != ""
}
