package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/tutoring-admin/internal/service"
)

// StudentHandler exposes the student roster endpoints (behind
// RequireSession). There is deliberately no update or delete: the roster
// is append-only through the API.
type StudentHandler struct {
	svc    *service.StudentService
	logger *slog.Logger
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(svc *service.StudentService, logger *slog.Logger) *StudentHandler {
	return &StudentHandler{svc: svc, logger: logger}
}

// studentRequest is the body of POST /students. The two enrollment flags
// default to false when omitted — Go's zero value does the right thing.
type studentRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	OnePrep      bool   `json:"onePrep"`
	OnlineCourse bool   `json:"onlineCourse"`
}

// HandleCreate adds a student to the roster.
//
// HTTP: POST /students
func (h *StudentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req studentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: "invalid JSON body"})
		return
	}

	student, err := h.svc.Create(r.Context(), service.StudentInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Password:     req.Password,
		OnePrep:      req.OnePrep,
		OnlineCourse: req.OnlineCourse,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, student)
}

// HandleList returns the full roster, newest first.
//
// HTTP: GET /students
func (h *StudentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	students, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Error("listing students failed", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, students)
}
