package events

import (
	"time"

	"github.com/caminhar/clinic-api/internal/domain"
)

// EventType enumerates supported audit event identifiers.
type EventType string

const (
	EventUserRegistered      EventType = "user_registered"
	EventUserLoggedIn        EventType = "user_logged_in"
	EventPatientCreated      EventType = "patient_created"
	EventPatientUpdated      EventType = "patient_updated"
	EventPatientDeleted      EventType = "patient_deleted"
	EventConsultationCreated EventType = "consultation_created"
	EventConsultationUpdated EventType = "consultation_updated"
	EventConsultationDeleted EventType = "consultation_deleted"
)

// Actor identifies who triggered an event. Login is empty for
// anonymous flows (registration).
type Actor struct {
	Login string      `json:"login,omitempty"`
	Role  domain.Role `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Login string      `json:"login"`
	Role  domain.Role `json:"role"`
}

// PatientPayload payload for patient lifecycle events.
type PatientPayload struct {
	PatientID int64  `json:"patient_id"`
	Name      string `json:"name"`
}

// ConsultationPayload payload for consultation lifecycle events.
type ConsultationPayload struct {
	RecordID     int64  `json:"record_id"`
	Consultation string `json:"consultation"`
}
