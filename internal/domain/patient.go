package domain

import "time"

// Patient is the aggregate for a clinic patient record.
type Patient struct {
	ID         int64
	Name       string
	CPF        string
	BirthDate  time.Time
	PostalCode string
	Phone      string
	Address    string
	Notes      string
	Deceased   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
