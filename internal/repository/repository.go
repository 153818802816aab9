// Package repository declares the storage interfaces consumed by the
// service layer. The sqlite subpackage is the only implementation; tests
// substitute in-memory fakes.
package repository

import (
	"context"

	"github.com/sakif/tutoring-admin/internal/model"
)

type UserRepository interface {
	// UpsertByGoogleID inserts the user on first OAuth sign-in, or refreshes
	// name/email/avatar on later sign-ins. The user's ID, role, and
	// timestamps are populated on return.
	UpsertByGoogleID(ctx context.Context, user *model.User) error
	// CreateWithPassword inserts a credential account. Fails with a conflict
	// error if the email is taken.
	CreateWithPassword(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	// GetByToken returns the session for the opaque token, or a not-found
	// error. Expiry is NOT checked here — that is the service's rule.
	GetByToken(ctx context.Context, token string) (*model.Session, error)
	// DeleteByToken removes the session. Deleting an unknown token is not
	// an error (sign-out is idempotent).
	DeleteByToken(ctx context.Context, token string) error
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	GetByID(ctx context.Context, id string) (*model.Payment, error)
	// ListUnpaid returns payments with paid=false, ordered by date
	// descending then time descending, each with CreatedBy populated.
	ListUnpaid(ctx context.Context) ([]model.Payment, error)
	// MarkPaid sets paid=true and returns the updated record. Re-marking an
	// already-paid record is a no-op update, not an error.
	MarkPaid(ctx context.Context, id string) (*model.Payment, error)
	// Update replaces date, time, name, and amount for the given id.
	Update(ctx context.Context, payment *model.Payment) error
}

type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	// List returns all students, newest first.
	List(ctx context.Context) ([]model.Student, error)
}
