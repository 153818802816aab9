package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/tutoring-admin/internal/apperror"
	"github.com/sakif/tutoring-admin/internal/model"
	"github.com/sakif/tutoring-admin/internal/repository"
)

// UserDB implements repository.UserRepository over the shared pool.
type UserDB struct {
	conn *sql.DB
}

// compile-time check that *UserDB implements repository.UserRepository
var _ repository.UserRepository = (*UserDB)(nil)

// UpsertByGoogleID inserts or updates a user keyed on their Google ID.
//
// First sign-in → INSERT with a fresh xid and the default role.
// Later sign-ins → UPDATE name/email/avatar (the profile may have changed
// on Google's side) while KEEPING the existing internal ID and role — a
// role granted by an admin must survive re-authentication.
func (db *UserDB) UpsertByGoogleID(ctx context.Context, user *model.User) error {
	var existingID, existingRole string
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, role FROM users WHERE google_id = ?`, user.GoogleID,
	).Scan(&existingID, &existingRole)

	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("sqlite: looking up user by google_id: %w", err)
	}

	if existingID != "" {
		user.ID = existingID
		user.Role = model.ParseRole(existingRole)
		user.UpdatedAt = time.Now()
		_, err = db.conn.ExecContext(ctx,
			`UPDATE users SET name = ?, email = ?, avatar_url = ?, updated_at = ?
			 WHERE id = ?`,
			user.Name, user.Email, user.AvatarURL, user.UpdatedAt, user.ID,
		)
		if err != nil {
			return fmt.Errorf("sqlite: updating user %s: %w", user.ID, err)
		}
		return nil
	}

	now := time.Now()
	user.ID = xid.New().String()
	user.Role = model.DefaultRole
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO users (id, google_id, name, email, avatar_url, password_hash, role, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, '', ?, ?, ?)`,
		user.ID, user.GoogleID, user.Name, user.Email, user.AvatarURL,
		string(user.Role), user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting user: %w", err)
	}
	return nil
}

// CreateWithPassword inserts a credential (email/password) account with the
// default role. A duplicate email surfaces as apperror.Conflict.
func (db *UserDB) CreateWithPassword(ctx context.Context, user *model.User) error {
	now := time.Now()
	user.ID = xid.New().String()
	user.Role = model.DefaultRole
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, google_id, name, email, avatar_url, password_hash, role, created_at, updated_at)
		 VALUES (?, '', ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.Email, user.AvatarURL, user.PasswordHash,
		string(user.Role), user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		// The driver reports the violated UNIQUE index by name.
		if strings.Contains(err.Error(), "idx_users_email") ||
			strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperror.Conflict("user", user.Email)
		}
		return fmt.Errorf("sqlite: inserting user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by internal ID.
// Returns apperror.ErrNotFound if no such user exists.
func (db *UserDB) GetByID(ctx context.Context, id string) (*model.User, error) {
	return db.getUser(ctx, `WHERE id = ?`, id)
}

// GetByEmail retrieves a user by email (used by the credential sign-in).
func (db *UserDB) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return db.getUser(ctx, `WHERE email = ?`, email)
}

func (db *UserDB) getUser(ctx context.Context, where string, arg any) (*model.User, error) {
	var (
		u    model.User
		role string
	)
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, google_id, name, email, avatar_url, password_hash, role, created_at, updated_at
		 FROM users `+where, arg,
	).Scan(
		&u.ID, &u.GoogleID, &u.Name, &u.Email, &u.AvatarURL,
		&u.PasswordHash, &role, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("user", fmt.Sprint(arg))
		}
		return nil, fmt.Errorf("sqlite: getting user: %w", err)
	}

	// Role validation happens here, at the boundary where external role
	// data enters the system: anything outside the closed set degrades to
	// the least-privileged role.
	u.Role = model.ParseRole(role)
	return &u, nil
}
