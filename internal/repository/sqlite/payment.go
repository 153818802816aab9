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

// PaymentDB implements repository.PaymentRepository over the shared pool.
type PaymentDB struct {
	conn *sql.DB
}

var _ repository.PaymentRepository = (*PaymentDB)(nil)

// Create inserts a payment sheet entry. Paid always starts false regardless
// of what the caller set on the struct.
func (db *PaymentDB) Create(ctx context.Context, payment *model.Payment) error {
	payment.ID = xid.New().String()
	payment.Paid = false
	payment.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO payments (id, date, time, name, amount, paid, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, 0, ?, ?)`,
		payment.ID, payment.Date, payment.Time, payment.Name,
		payment.Amount, payment.CreatedByID, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting payment: %w", err)
	}
	return nil
}

// GetByID retrieves a single payment (without the creator join).
func (db *PaymentDB) GetByID(ctx context.Context, id string) (*model.Payment, error) {
	var p model.Payment
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, date, time, name, amount, paid, created_by, created_at
		 FROM payments WHERE id = ?`, id,
	).Scan(&p.ID, &p.Date, &p.Time, &p.Name, &p.Amount, &p.Paid,
		&p.CreatedByID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("payment", id)
		}
		return nil, fmt.Errorf("sqlite: getting payment %s: %w", id, err)
	}
	return &p, nil
}

// ListUnpaid returns the open payment sheet: unpaid entries, newest lesson
// first (date descending, then time descending), each joined with the
// creating user's id/name/email.
//
// The time column is an "HH:MM" string, which sorts correctly as text
// within a single day.
func (db *PaymentDB) ListUnpaid(ctx context.Context) ([]model.Payment, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT p.id, p.date, p.time, p.name, p.amount, p.paid, p.created_by, p.created_at,
		        u.id, u.name, u.email
		 FROM payments p
		 JOIN users u ON u.id = p.created_by
		 WHERE p.paid = 0
		 ORDER BY p.date DESC, p.time DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing payments: %w", err)
	}
	defer rows.Close()

	// Non-nil so an empty sheet serializes as [] rather than null.
	payments := []model.Payment{}
	for rows.Next() {
		var (
			p model.Payment
			c model.PaymentCreator
		)
		if err := rows.Scan(
			&p.ID, &p.Date, &p.Time, &p.Name, &p.Amount, &p.Paid,
			&p.CreatedByID, &p.CreatedAt,
			&c.ID, &c.Name, &c.Email,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning payment: %w", err)
		}
		p.CreatedBy = &c
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating payments: %w", err)
	}
	return payments, nil
}

// MarkPaid flips paid to true and returns the updated record.
//
// The UPDATE is unconditional on the paid column: re-marking an
// already-paid payment rewrites true over true and succeeds. Only an
// unknown id is an error.
func (db *PaymentDB) MarkPaid(ctx context.Context, id string) (*model.Payment, error) {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE payments SET paid = 1 WHERE id = ?`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: marking payment %s paid: %w", id, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("sqlite: marking payment %s paid: %w", id, err)
	} else if n == 0 {
		return nil, apperror.NotFound("payment", id)
	}
	return db.GetByID(ctx, id)
}

// Update replaces date, time, name, and amount for the given payment.
// The paid flag, creator, and creation time are untouched.
func (db *PaymentDB) Update(ctx context.Context, payment *model.Payment) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE payments SET date = ?, time = ?, name = ?, amount = ?
		 WHERE id = ?`,
		payment.Date, payment.Time, payment.Name, payment.Amount, payment.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating payment %s: %w", payment.ID, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("sqlite: updating payment %s: %w", payment.ID, err)
	} else if n == 0 {
		return apperror.NotFound("payment", payment.ID)
	}

	updated, err := db.GetByID(ctx, payment.ID)
	if err != nil {
		return err
	}
	*payment = *updated
	return nil
}
