package model

import "time"

// Payment is one row of the tutor payment sheet.
//
// AMOUNT AS A STRING:
// Amount is a decimal currency value. It is stored and serialized as a
// fixed two-decimal string (e.g. "45.00") rather than a float64, so values
// like 0.10 round-trip exactly through the database and JSON. The create
// and update endpoints accept a JSON number and format it on the way in.
//
// Date carries the calendar day (midnight UTC); Time is the lesson time as
// an "HH:MM" string. They are separate columns because the payment sheet
// sorts by date first and time second, and the time is display data keyed
// in by staff, not an instant.
type Payment struct {
	ID          string          `json:"id"          db:"id"`
	Date        time.Time       `json:"date"        db:"date"`
	Time        string          `json:"time"        db:"time"`
	Name        string          `json:"name"        db:"name"`
	Amount      string          `json:"amount"      db:"amount"`
	Paid        bool            `json:"paid"        db:"paid"`
	CreatedByID string          `json:"createdById" db:"created_by"`
	CreatedBy   *PaymentCreator `json:"createdBy,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"   db:"created_at"`
}

// PaymentCreator is the slice of the creating user embedded in payment
// listings — just enough for the sheet to show who logged the entry.
type PaymentCreator struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
