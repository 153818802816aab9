package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/tutoring-admin/internal/model"
	"github.com/sakif/tutoring-admin/internal/repository"
)

// StudentDB implements repository.StudentRepository over the shared pool.
type StudentDB struct {
	conn *sql.DB
}

var _ repository.StudentRepository = (*StudentDB)(nil)

// Create inserts a student record.
func (db *StudentDB) Create(ctx context.Context, student *model.Student) error {
	student.ID = xid.New().String()
	student.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO students (id, first_name, last_name, email, password, one_prep, online_course, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		student.ID, student.FirstName, student.LastName, student.Email,
		student.Password, student.OnePrep, student.OnlineCourse, student.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting student: %w", err)
	}
	return nil
}

// List returns every student in reverse creation order. The id tiebreaker
// keeps the ordering stable when rows share a CURRENT_TIMESTAMP second.
func (db *StudentDB) List(ctx context.Context) ([]model.Student, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, first_name, last_name, email, password, one_prep, online_course, created_at
		 FROM students
		 ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing students: %w", err)
	}
	defer rows.Close()

	students := []model.Student{}
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(
			&s.ID, &s.FirstName, &s.LastName, &s.Email, &s.Password,
			&s.OnePrep, &s.OnlineCourse, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning student: %w", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating students: %w", err)
	}
	return students, nil
}
