package sqlite

import (
	"context"
	"testing"

	"github.com/sakif/tutoring-admin/internal/model"
)

// TESTING WITH IN-MEMORY SQLITE:
// Using ":memory:" creates a fresh database that exists only during the test.
// Benefits:
// - Fast: no disk I/O
// - Isolated: each test gets its own database
// - Clean: automatically destroyed when the connection closes
//
// newTestDB is a "test helper" — a function used only in tests to reduce boilerplate.
// The `t.Helper()` call tells Go's test framework to report errors at the CALLER's
// line number, not inside this function. This makes test failure output much clearer.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	// t.Cleanup registers a function to run when the test finishes.
	// This is like defer, but scoped to the test — even works in subtests.
	t.Cleanup(func() { db.Close() })
	return db
}

// createTestGoogleUser upserts a Google-backed user and fails the test on error.
func createTestGoogleUser(t *testing.T, u *UserDB, googleID, name string) *model.User {
	t.Helper()
	user := &model.User{
		GoogleID:  googleID,
		Name:      name,
		Email:     name + "@example.com",
		AvatarURL: "https://lh3.googleusercontent.com/a/avatar",
	}
	if err := u.UpsertByGoogleID(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}
