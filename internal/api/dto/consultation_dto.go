package dto

import "github.com/caminhar/clinic-api/internal/domain"

// ConsultationRequest payload for creating or updating a record.
type ConsultationRequest struct {
	Consultation string `json:"consultation"`
	Symptoms     string `json:"symptoms"`
	Diagnosis    string `json:"diagnosis"`
	Exams        string `json:"exams"`
	RecordedAt   string `json:"recorded_at"`
}

// ConsultationResponse is the JSON projection of a consultation record.
type ConsultationResponse struct {
	ID           int64  `json:"id"`
	Consultation string `json:"consultation"`
	Symptoms     string `json:"symptoms"`
	Diagnosis    string `json:"diagnosis"`
	Exams        string `json:"exams"`
	RecordedAt   string `json:"recorded_at"`
}

// NewConsultationResponse maps a domain record to its response shape.
func NewConsultationResponse(record domain.ConsultationRecord) ConsultationResponse {
	return ConsultationResponse{
		ID:           record.ID,
		Consultation: record.Consultation,
		Symptoms:     record.Symptoms,
		Diagnosis:    record.Diagnosis,
		Exams:        record.Exams,
		RecordedAt:   record.RecordedAt.Format(DateLayout),
	}
}

// NewConsultationResponseList maps a slice of records.
func NewConsultationResponseList(records []domain.ConsultationRecord) []ConsultationResponse {
	out := make([]ConsultationResponse, 0, len(records))
	for _, record := range records {
		out = append(out, NewConsultationResponse(record))
	}
	return out
}
