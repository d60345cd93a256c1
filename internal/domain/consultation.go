package domain

import "time"

// ConsultationRecord captures one clinical consultation entry.
type ConsultationRecord struct {
	ID           int64
	Consultation string
	Symptoms     string
	Diagnosis    string
	Exams        string
	RecordedAt   time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
