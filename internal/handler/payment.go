package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/tutoring-admin/internal/auth"
	"github.com/sakif/tutoring-admin/internal/service"
)

// PaymentHandler exposes the payment sheet endpoints. All routes sit
// behind RequireSession — an unauthenticated call never reaches these
// methods.
type PaymentHandler struct {
	svc    *service.PaymentService
	logger *slog.Logger
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(svc *service.PaymentService, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{svc: svc, logger: logger}
}

// paymentRequest is the body of both POST /payments and PATCH /payments/{id}.
type paymentRequest struct {
	Date   string  `json:"date"`   // "YYYY-MM-DD"
	Time   string  `json:"time"`   // "HH:MM"
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// HandleCreate records a new payment entry for the authenticated user.
//
// HTTP: POST /payments
// BODY: {"date":"2024-03-01","time":"16:30","name":"Alice W","amount":45}
func (h *PaymentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "valid session required"})
		return
	}

	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: "invalid JSON body"})
		return
	}

	payment, err := h.svc.Create(r.Context(), service.PaymentInput{
		Date:   req.Date,
		Time:   req.Time,
		Name:   req.Name,
		Amount: req.Amount,
	}, user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, payment)
}

// HandleList returns the open payment sheet: unpaid entries only, date
// descending then time descending, each with the creator's id/name/email.
//
// HTTP: GET /payments
func (h *PaymentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	payments, err := h.svc.ListUnpaid(r.Context())
	if err != nil {
		h.logger.Error("listing payments failed", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

// HandleMarkPaid flips an entry's paid flag to true and returns the
// updated record. Re-marking a paid entry is a no-op success.
//
// HTTP: PATCH /payments/{id}/paid
func (h *PaymentHandler) HandleMarkPaid(w http.ResponseWriter, r *http.Request) {
	payment, err := h.svc.MarkPaid(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

// HandleUpdate replaces date/time/name/amount of an entry.
//
// HTTP: PATCH /payments/{id}
func (h *PaymentHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: "invalid JSON body"})
		return
	}

	payment, err := h.svc.Update(r.Context(), r.PathValue("id"), service.PaymentInput{
		Date:   req.Date,
		Time:   req.Time,
		Name:   req.Name,
		Amount: req.Amount,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}
