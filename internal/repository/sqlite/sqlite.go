// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo, which needs a C compiler and makes
// cross-compilation painful. modernc.org/sqlite is a pure Go translation
// of SQLite — works everywhere Go works.
//
// The portal's write volume is a handful of rows a day from a handful of
// staff; an embedded database with WAL mode handles that with no separate
// server to operate.
package sqlite

import (
	"database/sql"
	"fmt"

	// Side-effect import: the driver registers itself with database/sql
	// under the name "sqlite".
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool. The per-aggregate accessors
// (Users, Sessions, Payments, Students) hand out thin views that share
// this pool and implement the repository interfaces — one file per
// aggregate.
type DB struct {
	conn *sql.DB
}

// Users returns the user repository backed by this database.
func (db *DB) Users() *UserDB { return &UserDB{conn: db.conn} }

// Sessions returns the session repository backed by this database.
func (db *DB) Sessions() *SessionDB { return &SessionDB{conn: db.conn} }

// Payments returns the payment repository backed by this database.
func (db *DB) Payments() *PaymentDB { return &PaymentDB{conn: db.conn} }

// Students returns the student repository backed by this database.
func (db *DB) Students() *StudentDB { return &StudentDB{conn: db.conn} }

// New opens (or creates) the database at dbPath and runs migrations.
// Use ":memory:" in tests for a fresh, throwaway database.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// One connection, always. PRAGMAs apply per connection, a ":memory:"
	// database exists per connection, and SQLite allows one writer at a
	// time anyway — a wider pool would only reintroduce SQLITE_BUSY.
	conn.SetMaxOpenConns(1)

	// Force a real connection now — a bad path should fail at startup,
	// not on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets reads proceed while a write is in flight — needed because
	// every request shares this pool.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Off by default in SQLite; sessions and payments both reference users.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Callers defer this next to New.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps it safe to
// run on every startup.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			google_id     TEXT NOT NULL DEFAULT '',
			name          TEXT NOT NULL DEFAULT '',
			email         TEXT NOT NULL,
			avatar_url    TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL DEFAULT '',
			role          TEXT NOT NULL DEFAULT 'tutor',
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(email);
		-- google_id is unique only when set; credential accounts all carry ''.
		CREATE UNIQUE INDEX IF NOT EXISTS idx_users_google_id
			ON users(google_id) WHERE google_id <> '';
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			id         TEXT PRIMARY KEY,
			token      TEXT NOT NULL UNIQUE,
			user_id    TEXT NOT NULL REFERENCES users(id),
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			expires_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_user_id ON sessions(user_id);
	`)
	if err != nil {
		return fmt.Errorf("creating sessions table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS payments (
			id         TEXT PRIMARY KEY,
			date       DATETIME NOT NULL,
			time       TEXT NOT NULL,
			name       TEXT NOT NULL,
			amount     TEXT NOT NULL,
			paid       INTEGER NOT NULL DEFAULT 0,
			created_by TEXT NOT NULL REFERENCES users(id),
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		-- The payment sheet only ever lists unpaid rows in (date, time) order.
		CREATE INDEX IF NOT EXISTS idx_payments_unpaid
			ON payments(date DESC, time DESC) WHERE paid = 0;
	`)
	if err != nil {
		return fmt.Errorf("creating payments table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS students (
			id            TEXT PRIMARY KEY,
			first_name    TEXT NOT NULL,
			last_name     TEXT NOT NULL,
			email         TEXT NOT NULL DEFAULT '',
			password      TEXT NOT NULL DEFAULT '',
			one_prep      INTEGER NOT NULL DEFAULT 0,
			online_course INTEGER NOT NULL DEFAULT 0,
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_students_created_at ON students(created_at);
	`)
	if err != nil {
		return fmt.Errorf("creating students table: %w", err)
	}

	return nil
}
