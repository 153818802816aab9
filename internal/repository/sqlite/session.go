package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/tutoring-admin/internal/apperror"
	"github.com/sakif/tutoring-admin/internal/model"
	"github.com/sakif/tutoring-admin/internal/repository"
)

// SessionDB implements repository.SessionRepository over the shared pool.
type SessionDB struct {
	conn *sql.DB
}

var _ repository.SessionRepository = (*SessionDB)(nil)

// Create inserts a session row. The caller supplies Token and ExpiresAt;
// ID and CreatedAt are assigned here.
func (db *SessionDB) Create(ctx context.Context, session *model.Session) error {
	session.ID = xid.New().String()
	session.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO sessions (id, token, user_id, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?)`,
		session.ID, session.Token, session.UserID,
		session.CreatedAt, session.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting session: %w", err)
	}
	return nil
}

// GetByToken looks up a session by its opaque token. Expiry is not checked
// here — the service layer owns that rule (and deletes expired rows).
func (db *SessionDB) GetByToken(ctx context.Context, token string) (*model.Session, error) {
	var s model.Session
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, token, user_id, created_at, expires_at
		 FROM sessions WHERE token = ?`, token,
	).Scan(&s.ID, &s.Token, &s.UserID, &s.CreatedAt, &s.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Deliberately not echoing the token back — it's a credential.
			return nil, apperror.NotFound("session", "token")
		}
		return nil, fmt.Errorf("sqlite: getting session: %w", err)
	}
	return &s, nil
}

// DeleteByToken revokes a session. Unknown tokens delete zero rows and
// return nil — sign-out must be idempotent.
func (db *SessionDB) DeleteByToken(ctx context.Context, token string) error {
	if _, err := db.conn.ExecContext(ctx,
		`DELETE FROM sessions WHERE token = ?`, token,
	); err != nil {
		return fmt.Errorf("sqlite: deleting session: %w", err)
	}
	return nil
}
