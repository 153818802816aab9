package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/sakif/tutoring-admin/internal/apperror"
	"github.com/sakif/tutoring-admin/internal/model"
)

// =========================================================================
// FAKE REPOSITORY
// =========================================================================

// fakePaymentRepo is an in-memory implementation of
// repository.PaymentRepository. It keeps insertion order, which is enough
// for the service tests — ordering itself is the sqlite package's concern.
type fakePaymentRepo struct {
	payments  []*model.Payment
	nextID    int
	createErr error
	listErr   error
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{nextID: 1}
}

func (f *fakePaymentRepo) Create(ctx context.Context, payment *model.Payment) error {
	if f.createErr != nil {
		return f.createErr
	}
	payment.ID = fmt.Sprintf("payment-fake-id-%d", f.nextID)
	f.nextID++
	payment.Paid = false
	payment.CreatedAt = time.Now()
	copied := *payment
	f.payments = append(f.payments, &copied)
	return nil
}

func (f *fakePaymentRepo) GetByID(ctx context.Context, id string) (*model.Payment, error) {
	for _, p := range f.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, apperror.NotFound("payment", id)
}

func (f *fakePaymentRepo) ListUnpaid(ctx context.Context) ([]model.Payment, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []model.Payment{}
	for _, p := range f.payments {
		if !p.Paid {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) MarkPaid(ctx context.Context, id string) (*model.Payment, error) {
	p, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Paid = true
	return p, nil
}

func (f *fakePaymentRepo) Update(ctx context.Context, payment *model.Payment) error {
	stored, err := f.GetByID(ctx, payment.ID)
	if err != nil {
		return err
	}
	stored.Date = payment.Date
	stored.Time = payment.Time
	stored.Name = payment.Name
	stored.Amount = payment.Amount
	*payment = *stored
	return nil
}

func newTestPaymentService(repo *fakePaymentRepo) *PaymentService {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewPaymentService(repo, logger)
}

func validInput() PaymentInput {
	return PaymentInput{
		Date:   "2024-03-15",
		Time:   "14:30",
		Name:   "Max Mustermann",
		Amount: 45,
	}
}

// =========================================================================
// Create TESTS
// =========================================================================

func TestPaymentServiceCreate(t *testing.T) {
	repo := newFakePaymentRepo()
	svc := newTestPaymentService(repo)

	payment, err := svc.Create(context.Background(), validInput(), "user-1")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if payment.ID == "" {
		t.Error("Create() returned a payment without an ID")
	}
	if payment.CreatedByID != "user-1" {
		t.Errorf("CreatedByID = %q, want %q", payment.CreatedByID, "user-1")
	}
	if payment.Paid {
		t.Error("a new payment must start unpaid")
	}
	// The amount is canonicalized to a two-decimal string.
	if payment.Amount != "45.00" {
		t.Errorf("Amount = %q, want %q", payment.Amount, "45.00")
	}
	wantDate := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	if !payment.Date.Equal(wantDate) {
		t.Errorf("Date = %v, want %v", payment.Date, wantDate)
	}
}

func TestPaymentServiceCreate_AmountFormatting(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{45, "45.00"},
		{45.5, "45.50"},
		{45.55, "45.55"},
		{0.01, "0.01"},
	}
	for _, tt := range tests {
		repo := newFakePaymentRepo()
		svc := newTestPaymentService(repo)

		in := validInput()
		in.Amount = tt.amount
		payment, err := svc.Create(context.Background(), in, "user-1")
		if err != nil {
			t.Fatalf("Create(amount=%v) error = %v", tt.amount, err)
		}
		if payment.Amount != tt.want {
			t.Errorf("Amount for %v = %q, want %q", tt.amount, payment.Amount, tt.want)
		}
	}
}

func TestPaymentServiceCreate_Validation(t *testing.T) {
	svc := newTestPaymentService(newFakePaymentRepo())

	mutate := func(fn func(*PaymentInput)) PaymentInput {
		in := validInput()
		fn(&in)
		return in
	}

	tests := []struct {
		name string
		in   PaymentInput
	}{
		{"bad date format", mutate(func(in *PaymentInput) { in.Date = "15.03.2024" })},
		{"bad time format", mutate(func(in *PaymentInput) { in.Time = "2pm" })},
		{"empty name", mutate(func(in *PaymentInput) { in.Name = "   " })},
		{"zero amount", mutate(func(in *PaymentInput) { in.Amount = 0 })},
		{"negative amount", mutate(func(in *PaymentInput) { in.Amount = -5 })},
		{"absurd amount", mutate(func(in *PaymentInput) { in.Amount = 2_000_000 })},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.in, "user-1")
			if !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("error = %v, want a validation error", err)
			}
		})
	}
}

func TestPaymentServiceCreate_RequiresUser(t *testing.T) {
	svc := newTestPaymentService(newFakePaymentRepo())

	if _, err := svc.Create(context.Background(), validInput(), ""); err == nil {
		t.Error("Create() without a user ID should fail")
	}
}

// =========================================================================
// ListUnpaid / MarkPaid / Update TESTS
// =========================================================================

func TestPaymentServiceListUnpaid(t *testing.T) {
	repo := newFakePaymentRepo()
	svc := newTestPaymentService(repo)

	open, err := svc.Create(context.Background(), validInput(), "user-1")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	settled, err := svc.Create(context.Background(), validInput(), "user-1")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := svc.MarkPaid(context.Background(), settled.ID); err != nil {
		t.Fatalf("MarkPaid() error = %v", err)
	}

	payments, err := svc.ListUnpaid(context.Background())
	if err != nil {
		t.Fatalf("ListUnpaid() error = %v", err)
	}
	if len(payments) != 1 || payments[0].ID != open.ID {
		t.Errorf("ListUnpaid() = %v, want only the open entry", payments)
	}
}

func TestPaymentServiceMarkPaid_EmptyID(t *testing.T) {
	svc := newTestPaymentService(newFakePaymentRepo())

	_, err := svc.MarkPaid(context.Background(), "")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want a validation error for an empty id", err)
	}
}

func TestPaymentServiceMarkPaid_UnknownID(t *testing.T) {
	svc := newTestPaymentService(newFakePaymentRepo())

	_, err := svc.MarkPaid(context.Background(), "nonexistent")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want not-found", err)
	}
}

func TestPaymentServiceUpdate(t *testing.T) {
	repo := newFakePaymentRepo()
	svc := newTestPaymentService(repo)

	created, err := svc.Create(context.Background(), validInput(), "user-1")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	in := PaymentInput{Date: "2024-03-22", Time: "16:00", Name: "Rescheduled", Amount: 60}
	updated, err := svc.Update(context.Background(), created.ID, in)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.Name != "Rescheduled" || updated.Amount != "60.00" {
		t.Errorf("updated payment = %+v, want the new fields", updated)
	}
	// Update revalidates like create.
	if _, err := svc.Update(context.Background(), created.ID, PaymentInput{Date: "bad"}); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want a validation error", err)
	}
}
