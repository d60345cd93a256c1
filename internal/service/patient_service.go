package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/caminhar/clinic-api/internal/auth"
	"github.com/caminhar/clinic-api/internal/domain"
	"github.com/caminhar/clinic-api/internal/events"
	"github.com/caminhar/clinic-api/internal/repository"
	"github.com/caminhar/clinic-api/pkg/cpf"
	apperrors "github.com/caminhar/clinic-api/pkg/util"
)

// PatientInput describes patient creation/update payload.
type PatientInput struct {
	Name       string
	CPF        string
	BirthDate  time.Time
	PostalCode string
	Phone      string
	Address    string
	Notes      string
	Deceased   bool
}

// PatientService coordinates patient record workflows.
type PatientService struct {
	patients   repository.PatientRepository
	dispatcher events.Dispatcher
}

// NewPatientService constructs the service.
func NewPatientService(patients repository.PatientRepository, dispatcher events.Dispatcher) *PatientService {
	return &PatientService{patients: patients, dispatcher: dispatcher}
}

// List returns all patients ordered by name.
func (s *PatientService) List(ctx context.Context) ([]domain.Patient, error) {
	return s.patients.List(ctx)
}

// Get loads a single patient by id.
func (s *PatientService) Get(ctx context.Context, id int64) (*domain.Patient, error) {
	patient, err := s.patients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("patient", nil)
		}
		return nil, err
	}
	return patient, nil
}

// Create validates input and stores a new patient.
func (s *PatientService) Create(ctx context.Context, actor *auth.Principal, input PatientInput) (*domain.Patient, error) {
	if err := validatePatientInput(input); err != nil {
		return nil, err
	}

	patient := &domain.Patient{
		Name:       input.Name,
		CPF:        input.CPF,
		BirthDate:  input.BirthDate,
		PostalCode: input.PostalCode,
		Phone:      input.Phone,
		Address:    input.Address,
		Notes:      input.Notes,
		Deceased:   input.Deceased,
	}
	if err := s.patients.Create(ctx, patient); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventPatientCreated, actor,
		events.PatientPayload{PatientID: patient.ID, Name: patient.Name})
	return patient, nil
}

// Update validates input and overwrites an existing patient.
func (s *PatientService) Update(ctx context.Context, actor *auth.Principal, id int64, input PatientInput) (*domain.Patient, error) {
	if err := validatePatientInput(input); err != nil {
		return nil, err
	}

	patient, err := s.patients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("patient", nil)
		}
		return nil, err
	}

	patient.Name = input.Name
	patient.CPF = input.CPF
	patient.BirthDate = input.BirthDate
	patient.PostalCode = input.PostalCode
	patient.Phone = input.Phone
	patient.Address = input.Address
	patient.Notes = input.Notes
	patient.Deceased = input.Deceased

	if err := s.patients.Update(ctx, patient); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("patient", nil)
		}
		return nil, err
	}

	s.publish(ctx, events.EventPatientUpdated, actor,
		events.PatientPayload{PatientID: patient.ID, Name: patient.Name})
	return patient, nil
}

// Delete removes a patient by id.
func (s *PatientService) Delete(ctx context.Context, actor *auth.Principal, id int64) error {
	if err := s.patients.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("patient", nil)
		}
		return err
	}
	s.publish(ctx, events.EventPatientDeleted, actor, events.PatientPayload{PatientID: id})
	return nil
}

func validatePatientInput(input PatientInput) error {
	if input.Name == "" {
		return apperrors.NewValidationError("name is required", nil)
	}
	if !cpf.IsValid(input.CPF) {
		return apperrors.NewValidationError("invalid cpf", nil)
	}
	if input.BirthDate.IsZero() {
		return apperrors.NewValidationError("birth_date is required", nil)
	}
	return nil
}

func (s *PatientService) publish(ctx context.Context, eventType events.EventType, actor *auth.Principal, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	}
	if actor != nil {
		event.Actor = events.Actor{Login: actor.Login, Role: actor.Role}
	}
	_ = s.dispatcher.Publish(ctx, event)
}
