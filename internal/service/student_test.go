package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/sakif/tutoring-admin/internal/apperror"
	"github.com/sakif/tutoring-admin/internal/model"
)

// fakeStudentRepo is an in-memory implementation of
// repository.StudentRepository.
type fakeStudentRepo struct {
	students  []*model.Student
	nextID    int
	createErr error
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{nextID: 1}
}

func (f *fakeStudentRepo) Create(ctx context.Context, student *model.Student) error {
	if f.createErr != nil {
		return f.createErr
	}
	student.ID = fmt.Sprintf("student-fake-id-%d", f.nextID)
	f.nextID++
	student.CreatedAt = time.Now()
	copied := *student
	f.students = append(f.students, &copied)
	return nil
}

func (f *fakeStudentRepo) List(ctx context.Context) ([]model.Student, error) {
	out := []model.Student{}
	for _, s := range f.students {
		out = append(out, *s)
	}
	return out, nil
}

func newTestStudentService(repo *fakeStudentRepo) *StudentService {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewStudentService(repo, logger)
}

// =========================================================================
// Create TESTS
// =========================================================================

func TestStudentServiceCreate(t *testing.T) {
	repo := newFakeStudentRepo()
	svc := newTestStudentService(repo)

	student, err := svc.Create(context.Background(), StudentInput{
		FirstName: "  Mia ",
		LastName:  " Schmidt ",
		Email:     " mia@student.example.com ",
		Password:  "prep-pass",
		OnePrep:   true,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Names and email come back trimmed; the password is verbatim.
	if student.FirstName != "Mia" || student.LastName != "Schmidt" {
		t.Errorf("names = (%q, %q), want trimmed", student.FirstName, student.LastName)
	}
	if student.Email != "mia@student.example.com" {
		t.Errorf("email = %q, want trimmed", student.Email)
	}
	if student.Password != "prep-pass" {
		t.Errorf("password = %q, want stored verbatim", student.Password)
	}
	if !student.OnePrep || student.OnlineCourse {
		t.Errorf("flags = (%v, %v), want (true, false)", student.OnePrep, student.OnlineCourse)
	}
}

func TestStudentServiceCreate_Validation(t *testing.T) {
	svc := newTestStudentService(newFakeStudentRepo())

	tooLong := strings.Repeat("x", MaxStudentNameLength+1)
	tests := []struct {
		name string
		in   StudentInput
	}{
		{"missing first name", StudentInput{LastName: "Schmidt"}},
		{"missing last name", StudentInput{FirstName: "Mia"}},
		{"whitespace-only first name", StudentInput{FirstName: "   ", LastName: "Schmidt"}},
		{"first name too long", StudentInput{FirstName: tooLong, LastName: "Schmidt"}},
		{"last name too long", StudentInput{FirstName: "Mia", LastName: tooLong}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.in)
			if !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("error = %v, want a validation error", err)
			}
		})
	}
}

func TestStudentServiceCreate_CredentialsAreOptional(t *testing.T) {
	// Only the two names are required: the prep-platform credentials may
	// be filled in later.
	svc := newTestStudentService(newFakeStudentRepo())

	if _, err := svc.Create(context.Background(), StudentInput{FirstName: "Tom", LastName: "Weber"}); err != nil {
		t.Errorf("Create() without credentials error = %v, want nil", err)
	}
}

// =========================================================================
// List TESTS
// =========================================================================

func TestStudentServiceList(t *testing.T) {
	repo := newFakeStudentRepo()
	svc := newTestStudentService(repo)

	if _, err := svc.Create(context.Background(), StudentInput{FirstName: "Mia", LastName: "Schmidt"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	students, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(students) != 1 {
		t.Errorf("List() returned %d students, want 1", len(students))
	}
}
