// Package service contains the business logic layer of the application.
//
// The layering follows the usual three tiers:
//
//	Handler (HTTP)     → parses requests, writes responses, sets cookies
//	Service (business) → validates, enforces rules, orchestrates
//	Repository (data)  → reads/writes the database
//
// Services take repository interfaces, not concrete types, so tests swap
// in in-memory fakes and the handlers stay ignorant of SQL.
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/sakif/tutoring-admin/internal/apperror"
	"github.com/sakif/tutoring-admin/internal/auth"
	"github.com/sakif/tutoring-admin/internal/model"
	"github.com/sakif/tutoring-admin/internal/repository"
)

// SessionTTL is how long a session lives from creation. Expiry is fixed,
// not sliding — re-authenticating is a Google redirect away.
const SessionTTL = 7 * 24 * time.Hour

// AuthService owns identity and session rules: who a token belongs to,
// when accounts get created, when sessions die.
type AuthService struct {
	users     repository.UserRepository
	sessions  repository.SessionRepository
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
func NewAuthService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		sessions:  sessions,
		passwords: passwords,
		logger:    logger,
	}
}

// AuthResult bundles the authenticated user with the freshly minted
// session, so the handler can set the cookie and respond in one step.
type AuthResult struct {
	User    *model.User
	Session *model.Session
}

// LoginOrRegisterGoogle completes a Google sign-in: upsert the account
// (create on first login with the default role, refresh the profile on
// later logins) and mint a session.
func (s *AuthService) LoginOrRegisterGoogle(ctx context.Context, gUser *auth.GoogleUser) (*AuthResult, error) {
	if gUser == nil || gUser.Sub == "" {
		return nil, fmt.Errorf("service/auth: Google user must not be empty")
	}

	user := &model.User{
		GoogleID:  gUser.Sub,
		Name:      gUser.Name,
		Email:     gUser.Email,
		AvatarURL: gUser.Picture,
	}
	if err := s.users.UpsertByGoogleID(ctx, user); err != nil {
		return nil, fmt.Errorf("service/auth: upserting user: %w", err)
	}

	s.logger.Info("user authenticated via Google",
		slog.String("userID", user.ID),
		slog.String("role", string(user.Role)),
	)

	return s.startSession(ctx, user)
}

// RegisterEmail creates a credential account and signs it in.
// The password is bcrypt-hashed; the account gets the default role.
func (s *AuthService) RegisterEmail(ctx context.Context, name, email, password string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	if name == "" {
		return nil, apperror.ValidationFailed("name", "name is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperror.ValidationFailed("email", "a valid email address is required")
	}
	if len(password) < 8 {
		return nil, apperror.ValidationFailed("password", "password must be at least 8 characters")
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("service/auth: hashing password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.CreateWithPassword(ctx, user); err != nil {
		return nil, fmt.Errorf("service/auth: creating user: %w", err)
	}

	s.logger.Info("user registered", slog.String("userID", user.ID))

	return s.startSession(ctx, user)
}

// LoginEmail verifies credentials and mints a session.
//
// Unknown email and wrong password return the SAME unauthenticated error —
// the response must not reveal which half was wrong.
func (s *AuthService) LoginEmail(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, apperror.Unauthenticated("invalid email or password")
	}
	// OAuth-only accounts have no hash; they cannot sign in with a password.
	if user.PasswordHash == "" {
		return nil, apperror.Unauthenticated("invalid email or password")
	}

	ok, err := s.passwords.Verify(user.PasswordHash, password)
	if err != nil {
		return nil, fmt.Errorf("service/auth: verifying password: %w", err)
	}
	if !ok {
		return nil, apperror.Unauthenticated("invalid email or password")
	}

	s.logger.Info("user authenticated via password", slog.String("userID", user.ID))

	return s.startSession(ctx, user)
}

// ValidateSession resolves a session token to its session and owning user.
//
// This is the authoritative per-request check behind every data endpoint
// (via auth.RequireSession). Missing, unknown, and expired tokens all come
// back as the same unauthenticated error; expired rows are deleted on the
// way out so the table doesn't accumulate dead sessions.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*model.Session, *model.User, error) {
	if token == "" {
		return nil, nil, apperror.Unauthenticated("missing session token")
	}

	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, nil, apperror.Unauthenticated("invalid session")
	}

	if session.Expired(time.Now()) {
		// Lazy cleanup; failure to delete doesn't change the verdict.
		if delErr := s.sessions.DeleteByToken(ctx, token); delErr != nil {
			s.logger.Warn("failed to delete expired session", slog.String("error", delErr.Error()))
		}
		return nil, nil, apperror.Unauthenticated("session expired")
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, nil, apperror.Unauthenticated("invalid session")
	}

	return session, user, nil
}

// SignOut revokes the session for the given token. Always succeeds, even
// when the token is unknown or already revoked — signing out twice is fine.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.DeleteByToken(ctx, token); err != nil {
		return fmt.Errorf("service/auth: revoking session: %w", err)
	}
	return nil
}

// GetUserByID returns the user for the given internal ID.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, fmt.Errorf("service/auth: user ID must not be empty")
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service/auth: fetching user %s: %w", id, err)
	}
	return user, nil
}

// startSession mints an opaque session token and persists the session row.
func (s *AuthService) startSession(ctx context.Context, user *model.User) (*AuthResult, error) {
	token, err := newSessionToken()
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating session token: %w", err)
	}

	session := &model.Session{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(SessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("service/auth: creating session: %w", err)
	}

	return &AuthResult{User: user, Session: session}, nil
}

// newSessionToken returns 256 bits from crypto/rand, hex-encoded.
//
// The token is a bearer credential, so it must be unguessable — xid (our
// record ID generator) is time-ordered and unsuitable for secrets.
func newSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
