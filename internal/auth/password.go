// Package auth provides the building blocks of the authentication boundary:
// the Google OAuth provider, bcrypt password hashing for credential
// accounts, the session cookie policy, and the request middleware that
// resolves a cookie into an authenticated user.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// defaultCost is the bcrypt work factor for portal account passwords.
//
// Cost 12 takes roughly ~250ms on a modern server — negligible at sign-in,
// expensive for anyone brute-forcing a stolen hash. Tune so hashing stays
// in the 200–300ms range on production hardware.
const defaultCost = 12

// PasswordService provides bcrypt hashing and verification for the
// email/password registration path.
//
// It's a struct (not free functions) so that the cost can be injected in
// tests — cost 4 makes the test suite fast without changing the logic
// under test.
type PasswordService struct {
	cost int
}

// NewPasswordService creates a PasswordService with the default cost (12).
func NewPasswordService() *PasswordService {
	return &PasswordService{cost: defaultCost}
}

// NewPasswordServiceForTest creates a PasswordService with a custom cost.
// Tests use bcrypt's minimum cost (4) so hashing takes milliseconds.
func NewPasswordServiceForTest(cost int) *PasswordService {
	return &PasswordService{cost: cost}
}

// Hash returns the bcrypt hash of a plaintext password.
//
// bcrypt generates a random salt per call and embeds it in the output, so
// two accounts with the same password never share a hash and no separate
// salt column is needed.
func (s *PasswordService) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("auth: password must not be empty")
	}
	// bcrypt silently truncates input past 72 bytes — reject instead so a
	// user's "accepted" password is always the one actually checked.
	if len(password) > 72 {
		return "", errors.New("auth: password must be 72 bytes or less")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hashing password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether the plaintext password matches the stored hash.
// A mismatch is not an error — it returns (false, nil); errors are reserved
// for malformed hashes.
func (s *PasswordService) Verify(hash, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("auth: verifying password: %w", err)
}
