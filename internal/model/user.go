// Package model defines the data structures used throughout the application.
package model

import "time"

// Role is the closed set of portal roles.
//
// WHY A NAMED TYPE AND NOT A BARE STRING?
// Role data enters the system from outside (the database, OAuth callbacks)
// where it is just text. Funnelling every external value through ParseRole
// at the read boundary means the rest of the codebase only ever sees one of
// the three declared constants — there is no "fourth role" anywhere past
// that point.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleTutor Role = "tutor"
)

// DefaultRole is assigned to newly created accounts and substituted for any
// absent or unrecognized role value. Tutor is the least-privileged role: it
// can see only the student roster (see the nav package).
const DefaultRole = RoleTutor

// ParseRole maps an external role string onto the closed set.
// Unknown or empty input degrades to DefaultRole rather than erroring —
// a corrupted role column should lose privileges, not lock the row out.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin, RoleUser, RoleTutor:
		return Role(s)
	default:
		return DefaultRole
	}
}

// User represents a portal account.
//
// Accounts are created two ways: a Google OAuth sign-in (GoogleID set,
// PasswordHash empty) or an email/password registration (the reverse).
// GoogleID is Google's stable "sub" claim — we still mint our own xid
// primary key so record identity never depends on the identity provider.
//
// PasswordHash is a bcrypt hash. It is tagged json:"-" so it can never leak
// through an API response, no matter which handler serializes the struct.
type User struct {
	ID           string    `json:"id"        db:"id"`
	GoogleID     string    `json:"-"         db:"google_id"` // OAuth "sub" claim, "" for credential accounts
	Name         string    `json:"name"      db:"name"`
	Email        string    `json:"email"     db:"email"`
	AvatarURL    string    `json:"avatarUrl" db:"avatar_url"`
	PasswordHash string    `json:"-"         db:"password_hash"`
	Role         Role      `json:"role"      db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}
