package sqlite

import (
	"context"
	"testing"

	"github.com/sakif/tutoring-admin/internal/model"
)

func createTestStudent(t *testing.T, db *DB, first, last string) *model.Student {
	t.Helper()
	student := &model.Student{
		FirstName: first,
		LastName:  last,
		Email:     first + "@student.example.com",
		Password:  "prep-platform-pass",
	}
	if err := db.Students().Create(context.Background(), student); err != nil {
		t.Fatalf("failed to create test student: %v", err)
	}
	return student
}

// =========================================================================
// CREATE TESTS
// =========================================================================

func TestStudentCreate(t *testing.T) {
	db := newTestDB(t)

	student := &model.Student{
		FirstName:    "Mia",
		LastName:     "Schmidt",
		Email:        "mia@student.example.com",
		Password:     "abc123",
		OnePrep:      true,
		OnlineCourse: false,
	}
	if err := db.Students().Create(context.Background(), student); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if student.ID == "" {
		t.Error("Create() did not set student.ID")
	}
	if student.CreatedAt.IsZero() {
		t.Error("Create() did not set student.CreatedAt")
	}
}

func TestStudentCreate_FlagsDefaultFalse(t *testing.T) {
	db := newTestDB(t)
	createTestStudent(t, db, "Tom", "Weber")

	students, err := db.Students().List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(students) != 1 {
		t.Fatalf("List() returned %d students, want 1", len(students))
	}
	if students[0].OnePrep || students[0].OnlineCourse {
		t.Errorf("enrollment flags = (%v, %v), want both false by default",
			students[0].OnePrep, students[0].OnlineCourse)
	}
}

func TestStudentCreate_PasswordStoredVerbatim(t *testing.T) {
	// The student password is the credential for an EXTERNAL prep
	// platform; staff read it back from the roster, so it is stored
	// as-is, never hashed.
	db := newTestDB(t)
	created := createTestStudent(t, db, "Lena", "Koch")

	students, err := db.Students().List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if students[0].Password != created.Password {
		t.Errorf("stored password = %q, want %q verbatim", students[0].Password, created.Password)
	}
}

// =========================================================================
// LIST TESTS
// =========================================================================

func TestStudentList_NewestFirst(t *testing.T) {
	db := newTestDB(t)

	createTestStudent(t, db, "First", "Enrolled")
	createTestStudent(t, db, "Second", "Enrolled")
	createTestStudent(t, db, "Third", "Enrolled")

	students, err := db.Students().List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	wantOrder := []string{"Third", "Second", "First"}
	if len(students) != len(wantOrder) {
		t.Fatalf("List() returned %d students, want %d", len(students), len(wantOrder))
	}
	for i, want := range wantOrder {
		if students[i].FirstName != want {
			t.Errorf("students[%d].FirstName = %q, want %q", i, students[i].FirstName, want)
		}
	}
}

func TestStudentList_EmptyRosterIsEmptySlice(t *testing.T) {
	db := newTestDB(t)

	students, err := db.Students().List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if students == nil {
		t.Error("List() returned nil, want an empty slice")
	}
}
