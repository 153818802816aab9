package model

import "time"

// Session is a server-side authentication session.
//
// The Token is an opaque random value carried in an HttpOnly cookie;
// possession of a valid, unexpired token is the sole authorization
// credential. Because sessions live in the database (unlike stateless
// JWTs), sign-out can actually revoke them: the row is deleted and the
// token is dead immediately.
//
// Token is tagged json:"-": API responses report expiry and creation
// times, never the credential itself — the browser already holds it in
// the cookie.
type Session struct {
	ID        string    `json:"id"        db:"id"`
	Token     string    `json:"-"         db:"token"`
	UserID    string    `json:"userId"    db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
}

// Expired reports whether the session is past its expiry at time now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
