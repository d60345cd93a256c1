package dto

import (
	"time"

	"github.com/caminhar/clinic-api/internal/domain"
)

// DateLayout is the wire format for date-only fields.
const DateLayout = "2006-01-02"

// PatientRequest payload for creating or updating a patient.
type PatientRequest struct {
	Name       string `json:"name"`
	CPF        string `json:"cpf"`
	BirthDate  string `json:"birth_date"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Notes      string `json:"notes"`
	Deceased   bool   `json:"deceased"`
}

// PatientResponse is the JSON projection of a patient.
type PatientResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	CPF        string `json:"cpf"`
	BirthDate  string `json:"birth_date"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Notes      string `json:"notes"`
	Deceased   bool   `json:"deceased"`
}

// NewPatientResponse maps a domain patient to its response shape.
func NewPatientResponse(patient domain.Patient) PatientResponse {
	return PatientResponse{
		ID:         patient.ID,
		Name:       patient.Name,
		CPF:        patient.CPF,
		BirthDate:  patient.BirthDate.Format(DateLayout),
		PostalCode: patient.PostalCode,
		Phone:      patient.Phone,
		Address:    patient.Address,
		Notes:      patient.Notes,
		Deceased:   patient.Deceased,
	}
}

// NewPatientResponseList maps a slice of patients.
func NewPatientResponseList(patients []domain.Patient) []PatientResponse {
	out := make([]PatientResponse, 0, len(patients))
	for _, patient := range patients {
		out = append(out, NewPatientResponse(patient))
	}
	return out
}

// ParseDate parses a date-only wire value.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}
