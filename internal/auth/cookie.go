package auth

import (
	"net/http"
	"time"
)

// SessionCookieName is the fixed name of the session cookie. The route
// guard in the edge process checks for this exact name, so the constant is
// shared rather than duplicated as a string literal in two binaries.
const SessionCookieName = "session_token"

// SessionCookie builds the Set-Cookie for a freshly minted session token.
//
// COOKIE POLICY (two configurations):
//
// Development: the edge and the backend are both plain http://localhost, so
// SameSite=Lax and no Secure flag — the browser treats everything as
// same-site and Lax survives the OAuth top-level redirect.
//
// Production: the edge origin and the backend origin are different sites.
// A cookie issued during the proxied auth flow must still be attached when
// the browser calls the backend cross-origin, which requires
// SameSite=None — and browsers refuse SameSite=None without Secure.
//
// HttpOnly in both modes: the token is a bearer credential and script must
// never be able to read it.
func SessionCookie(token string, expiresAt time.Time, production bool) *http.Cookie {
	c := &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if production {
		c.SameSite = http.SameSiteNoneMode
		c.Secure = true
	}
	return c
}

// ClearSessionCookie builds the Set-Cookie that deletes the session cookie.
// Attributes must match SessionCookie's or the browser keeps the original.
func ClearSessionCookie(production bool) *http.Cookie {
	c := &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1, // delete immediately
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if production {
		c.SameSite = http.SameSiteNoneMode
		c.Secure = true
	}
	return c
}
