package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/tutoring-admin/internal/apperror"
	"github.com/sakif/tutoring-admin/internal/model"
	"github.com/sakif/tutoring-admin/internal/repository"
)

const MaxStudentNameLength = 100

// StudentInput carries the caller-supplied fields of a student record.
// OnePrep and OnlineCourse default to false when omitted.
type StudentInput struct {
	FirstName    string
	LastName     string
	Email        string
	Password     string
	OnePrep      bool
	OnlineCourse bool
}

// StudentService handles business logic for the student roster.
type StudentService struct {
	repo   repository.StudentRepository
	logger *slog.Logger
}

// NewStudentService creates a new StudentService.
func NewStudentService(repo repository.StudentRepository, logger *slog.Logger) *StudentService {
	return &StudentService{
		repo:   repo,
		logger: logger,
	}
}

// Create validates and stores a student record.
//
// Email and Password are the student's prep-platform credentials as typed
// by staff — optional, stored verbatim, never used to authenticate against
// this system.
func (s *StudentService) Create(ctx context.Context, in StudentInput) (*model.Student, error) {
	first := strings.TrimSpace(in.FirstName)
	last := strings.TrimSpace(in.LastName)

	if first == "" {
		return nil, apperror.ValidationFailed("firstName", "first name is required")
	}
	if last == "" {
		return nil, apperror.ValidationFailed("lastName", "last name is required")
	}
	if len(first) > MaxStudentNameLength || len(last) > MaxStudentNameLength {
		return nil, apperror.ValidationFailed("name",
			fmt.Sprintf("names must be %d characters or less", MaxStudentNameLength))
	}

	student := &model.Student{
		FirstName:    first,
		LastName:     last,
		Email:        strings.TrimSpace(in.Email),
		Password:     in.Password,
		OnePrep:      in.OnePrep,
		OnlineCourse: in.OnlineCourse,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, fmt.Errorf("service/student: creating student: %w", err)
	}

	s.logger.Info("student created", slog.String("studentID", student.ID))
	return student, nil
}

// List returns the full roster, newest first.
func (s *StudentService) List(ctx context.Context) ([]model.Student, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/student: listing students: %w", err)
	}
	return students, nil
}
