package model

import "time"

// Student is a tutoring student record.
//
// Password here is NOT a portal credential — it is the student's login for
// the external prep platforms, typed in by staff so tutors can look it up.
// It is stored and displayed as entered. Portal accounts (User) are the
// only thing this system authenticates, and those are always hashed.
//
// OnePrep and OnlineCourse flag enrollment in the two external programs;
// both default to false when omitted at creation.
type Student struct {
	ID           string    `json:"id"           db:"id"`
	FirstName    string    `json:"firstName"    db:"first_name"`
	LastName     string    `json:"lastName"     db:"last_name"`
	Email        string    `json:"email"        db:"email"`
	Password     string    `json:"password"     db:"password"`
	OnePrep      bool      `json:"onePrep"      db:"one_prep"`
	OnlineCourse bool      `json:"onlineCourse" db:"online_course"`
	CreatedAt    time.Time `json:"createdAt"    db:"created_at"`
}
