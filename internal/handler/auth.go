package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/rs/xid"
	"github.com/sakif/tutoring-admin/internal/auth"
	"github.com/sakif/tutoring-admin/internal/config"
	"github.com/sakif/tutoring-admin/internal/service"
)

// AuthHandler exposes the authentication endpoints under /api/auth.
//
// Route map:
//
//	GET  /api/auth/sign-in/google    → redirect to Google's consent screen
//	GET  /api/auth/callback/google   → finish OAuth, set session cookie
//	POST /api/auth/sign-up/email     → credential registration
//	POST /api/auth/sign-in/email     → credential login
//	POST /api/auth/sign-out          → revoke the session (idempotent)
//	GET  /api/auth/get-session       → current user + session, or 401
//	GET  /me                         → current user (RequireSession route)
//
// The browser never talks to these endpoints directly in production — the
// edge process proxies /api/auth/* so the Set-Cookie lands first-party on
// the edge's origin.
type AuthHandler struct {
	google *auth.GoogleProvider
	svc    *service.AuthService
	cfg    *config.Config
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler. The config reference carries the
// cookie policy (dev vs production) and the frontend origin for redirects.
func NewAuthHandler(
	google *auth.GoogleProvider,
	svc *service.AuthService,
	cfg *config.Config,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		google: google,
		svc:    svc,
		cfg:    cfg,
		logger: logger,
	}
}

// sessionResponse is the JSON shape shared by every endpoint that returns
// an authenticated state.
type sessionResponse struct {
	User    any `json:"user"`
	Session any `json:"session"`
}

// HandleGoogleLogin redirects the user to Google's consent screen.
//
// HTTP: GET /api/auth/sign-in/google
//
// A random state value goes into a short-lived cookie; the callback
// verifies the value Google echoes back matches it (CSRF protection on
// the OAuth flow itself).
func (h *AuthHandler) HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	state := xid.New().String()

	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		MaxAge:   600, // 10 minutes — long enough to approve, short enough to limit risk
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.google.AuthURL(state), http.StatusTemporaryRedirect)
}

// HandleGoogleCallback completes the OAuth login flow.
//
// HTTP: GET /api/auth/callback/google?code=xxx&state=yyy
//
// Success ends with the session cookie set and a redirect to the
// dashboard. Every failure ends with a redirect to
// <frontend>/dashboard?error=<code>&error_description=<text>, which the
// dashboard page renders as a human-readable auth error.
func (h *AuthHandler) HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" {
		h.logger.Warn("auth callback: missing state cookie")
		h.redirectWithError(w, r, "invalid_state", "sign-in session expired, please try again")
		return
	}
	if r.URL.Query().Get("state") != stateCookie.Value {
		h.logger.Warn("auth callback: state mismatch")
		h.redirectWithError(w, r, "invalid_state", "sign-in state did not match, please try again")
		return
	}

	// The state cookie is single-use.
	http.SetCookie(w, &http.Cookie{
		Name:   "oauth_state",
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	// Google reports user denial (and other consent-screen errors) as an
	// error query parameter rather than a code.
	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.logger.Info("auth callback: provider returned error", slog.String("error", errParam))
		h.redirectWithError(w, r, errParam, "Google sign-in was not completed")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.redirectWithError(w, r, "missing_code", "no authorization code in callback")
		return
	}

	gUser, err := h.google.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error("auth callback: exchange failed", slog.String("error", err.Error()))
		h.redirectWithError(w, r, "exchange_failed", "could not verify the Google sign-in")
		return
	}

	result, err := h.svc.LoginOrRegisterGoogle(r.Context(), gUser)
	if err != nil {
		h.logger.Error("auth callback: login failed", slog.String("error", err.Error()))
		h.redirectWithError(w, r, "login_failed", "could not sign you in")
		return
	}

	http.SetCookie(w, auth.SessionCookie(result.Session.Token, result.Session.ExpiresAt, h.cfg.Production))
	http.Redirect(w, r, h.cfg.FrontendURL+"/dashboard", http.StatusSeeOther)
}

// signUpRequest is the body of POST /api/auth/sign-up/email.
type signUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleSignUpEmail registers a credential account and signs it in.
//
// HTTP: POST /api/auth/sign-up/email
func (h *AuthHandler) HandleSignUpEmail(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: "invalid JSON body"})
		return
	}

	result, err := h.svc.RegisterEmail(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, auth.SessionCookie(result.Session.Token, result.Session.ExpiresAt, h.cfg.Production))
	writeJSON(w, http.StatusCreated, sessionResponse{User: result.User, Session: result.Session})
}

// signInRequest is the body of POST /api/auth/sign-in/email.
type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleSignInEmail verifies credentials and signs the user in.
//
// HTTP: POST /api/auth/sign-in/email
func (h *AuthHandler) HandleSignInEmail(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: "invalid JSON body"})
		return
	}

	result, err := h.svc.LoginEmail(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, auth.SessionCookie(result.Session.Token, result.Session.ExpiresAt, h.cfg.Production))
	writeJSON(w, http.StatusOK, sessionResponse{User: result.User, Session: result.Session})
}

// HandleSignOut revokes the current session and clears the cookie.
//
// HTTP: POST /api/auth/sign-out
//
// Idempotent: a missing cookie or an already-revoked token still gets a
// 200 and a cookie-clearing header. POST (not GET) because it changes
// state — browsers prefetch GETs.
func (h *AuthHandler) HandleSignOut(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.svc.SignOut(r.Context(), cookie.Value); err != nil {
			h.logger.Error("sign-out failed", slog.String("error", err.Error()))
			writeError(w, err)
			return
		}
	}

	http.SetCookie(w, auth.ClearSessionCookie(h.cfg.Production))
	writeJSON(w, http.StatusOK, map[string]string{"message": "signed out"})
}

// HandleGetSession returns the current user and session, or 401.
//
// HTTP: GET /api/auth/get-session
//
// This is the endpoint the edge calls server-side when rendering the
// dashboard shell, and the one clients use to check auth state on load.
func (h *AuthHandler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(auth.SessionCookieName)
	if err != nil || cookie.Value == "" {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "no session"})
		return
	}

	session, user, err := h.svc.ValidateSession(r.Context(), cookie.Value)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{User: user, Session: session})
}

// HandleMe returns the authenticated user's profile.
//
// HTTP: GET /me (behind RequireSession)
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		// Unreachable on a RequireSession route, but be safe.
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "valid session required"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

// redirectWithError sends the browser to the dashboard error screen with a
// machine code and a human-readable description as query parameters.
func (h *AuthHandler) redirectWithError(w http.ResponseWriter, r *http.Request, code, description string) {
	target := fmt.Sprintf("%s/dashboard?error=%s&error_description=%s",
		h.cfg.FrontendURL, url.QueryEscape(code), url.QueryEscape(description))
	http.Redirect(w, r, target, http.StatusSeeOther)
}
