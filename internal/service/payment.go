package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/sakif/tutoring-admin/internal/apperror"
	"github.com/sakif/tutoring-admin/internal/model"
	"github.com/sakif/tutoring-admin/internal/repository"
)

// Validation constants for payment sheet entries.
const (
	MaxPaymentNameLength = 200
	// MaxPaymentAmount guards against fat-fingered entries; no tutoring
	// session costs a million dollars.
	MaxPaymentAmount = 1_000_000
)

// PaymentInput carries the caller-supplied fields of a payment entry, used
// for both create and update. Date is "YYYY-MM-DD", Time is 24h "HH:MM",
// Amount is a positive number of dollars.
type PaymentInput struct {
	Date   string
	Time   string
	Name   string
	Amount float64
}

// PaymentService handles business logic for the tutor payment sheet.
type PaymentService struct {
	repo   repository.PaymentRepository
	logger *slog.Logger
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(repo repository.PaymentRepository, logger *slog.Logger) *PaymentService {
	return &PaymentService{
		repo:   repo,
		logger: logger,
	}
}

// Create validates and stores a new payment entry on the authenticated
// user's behalf. The stored record starts with paid=false.
func (s *PaymentService) Create(ctx context.Context, in PaymentInput, userID string) (*model.Payment, error) {
	if userID == "" {
		return nil, fmt.Errorf("service/payment: userID must not be empty")
	}

	date, timeStr, name, amount, err := validatePaymentInput(in)
	if err != nil {
		return nil, err
	}

	payment := &model.Payment{
		Date:        date,
		Time:        timeStr,
		Name:        name,
		Amount:      amount,
		CreatedByID: userID,
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("service/payment: creating payment: %w", err)
	}

	s.logger.Info("payment created",
		slog.String("paymentID", payment.ID),
		slog.String("amount", payment.Amount),
		slog.String("createdBy", userID),
	)
	return payment, nil
}

// ListUnpaid returns the open payment sheet, newest lesson first.
func (s *PaymentService) ListUnpaid(ctx context.Context) ([]model.Payment, error) {
	payments, err := s.repo.ListUnpaid(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/payment: listing payments: %w", err)
	}
	return payments, nil
}

// MarkPaid flips a payment's paid flag to true.
//
// Idempotent by decision: the sheet is refetched after every action, and a
// double click on "mark paid" should not surface an error — the second
// call is a no-op update returning the same record.
func (s *PaymentService) MarkPaid(ctx context.Context, id string) (*model.Payment, error) {
	if id == "" {
		return nil, apperror.ValidationFailed("id", "payment id is required")
	}

	payment, err := s.repo.MarkPaid(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service/payment: marking payment %s paid: %w", id, err)
	}

	s.logger.Info("payment marked paid", slog.String("paymentID", id))
	return payment, nil
}

// Update replaces date, time, name, and amount of an existing entry.
// The paid flag and creator are never touched by an update.
func (s *PaymentService) Update(ctx context.Context, id string, in PaymentInput) (*model.Payment, error) {
	if id == "" {
		return nil, apperror.ValidationFailed("id", "payment id is required")
	}

	date, timeStr, name, amount, err := validatePaymentInput(in)
	if err != nil {
		return nil, err
	}

	payment := &model.Payment{
		ID:     id,
		Date:   date,
		Time:   timeStr,
		Name:   name,
		Amount: amount,
	}
	if err := s.repo.Update(ctx, payment); err != nil {
		return nil, fmt.Errorf("service/payment: updating payment %s: %w", id, err)
	}
	return payment, nil
}

// validatePaymentInput normalizes and validates the shared fields, and
// formats the amount as the canonical two-decimal string.
func validatePaymentInput(in PaymentInput) (time.Time, string, string, string, error) {
	var zero time.Time

	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return zero, "", "", "", apperror.ValidationFailed("date", "date must be YYYY-MM-DD")
	}
	if _, err := time.Parse("15:04", in.Time); err != nil {
		return zero, "", "", "", apperror.ValidationFailed("time", "time must be HH:MM")
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return zero, "", "", "", apperror.ValidationFailed("name", "name is required")
	}
	if len(name) > MaxPaymentNameLength {
		return zero, "", "", "", apperror.ValidationFailed("name",
			fmt.Sprintf("name must be %d characters or less", MaxPaymentNameLength))
	}

	if in.Amount <= 0 || in.Amount > MaxPaymentAmount {
		return zero, "", "", "", apperror.ValidationFailed("amount", "amount must be a positive number")
	}
	amount := strconv.FormatFloat(in.Amount, 'f', 2, 64)

	return date, in.Time, name, amount, nil
}
