package auth

import (
	"net/url"
	"slices"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestAuthURL(t *testing.T) {
	p := NewGoogleProvider("client-id", "client-secret",
		"http://localhost:3000/api/auth/callback/google")

	raw := p.AuthURL("random-state")
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("AuthURL() produced an unparseable URL: %v", err)
	}

	if u.Host != "accounts.google.com" {
		t.Errorf("host = %q, want accounts.google.com", u.Host)
	}
	q := u.Query()
	if q.Get("client_id") != "client-id" {
		t.Errorf("client_id = %q, want %q", q.Get("client_id"), "client-id")
	}
	if q.Get("state") != "random-state" {
		t.Errorf("state = %q, want %q", q.Get("state"), "random-state")
	}
	if q.Get("redirect_uri") != "http://localhost:3000/api/auth/callback/google" {
		t.Errorf("redirect_uri = %q, want the callback URL", q.Get("redirect_uri"))
	}
	// The openid scope is what makes Google include an ID token in the
	// token response.
	if scope := q.Get("scope"); !slices.Contains(strings.Fields(scope), "openid") {
		t.Errorf("scope = %q, want it to include openid", scope)
	}
}

func TestStringClaim(t *testing.T) {
	// Build a real signed token, then read it back the way Exchange does.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "google-sub-123",
		"email": "ada@example.com",
		"aud":   []string{"client-id"}, // non-string claim, must read as ""
	})
	raw, err := token.SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		t.Fatalf("ParseUnverified() error = %v", err)
	}

	if got := stringClaim(claims, "sub"); got != "google-sub-123" {
		t.Errorf(`stringClaim("sub") = %q, want %q`, got, "google-sub-123")
	}
	if got := stringClaim(claims, "email"); got != "ada@example.com" {
		t.Errorf(`stringClaim("email") = %q, want %q`, got, "ada@example.com")
	}
	if got := stringClaim(claims, "picture"); got != "" {
		t.Errorf(`stringClaim on a missing claim = %q, want ""`, got)
	}
	if got := stringClaim(claims, "aud"); got != "" {
		t.Errorf(`stringClaim on a non-string claim = %q, want ""`, got)
	}
}
