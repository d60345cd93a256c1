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
	apperrors "github.com/caminhar/clinic-api/pkg/util"
)

// ConsultationInput describes consultation record payload.
type ConsultationInput struct {
	Consultation string
	Symptoms     string
	Diagnosis    string
	Exams        string
	RecordedAt   time.Time
}

// ConsultationService coordinates consultation record workflows.
type ConsultationService struct {
	records    repository.ConsultationRepository
	dispatcher events.Dispatcher
}

// NewConsultationService constructs the service.
func NewConsultationService(records repository.ConsultationRepository, dispatcher events.Dispatcher) *ConsultationService {
	return &ConsultationService{records: records, dispatcher: dispatcher}
}

// List returns all consultation records, newest first.
func (s *ConsultationService) List(ctx context.Context) ([]domain.ConsultationRecord, error) {
	return s.records.List(ctx)
}

// Get loads a single record by id.
func (s *ConsultationService) Get(ctx context.Context, id int64) (*domain.ConsultationRecord, error) {
	record, err := s.records.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("consultation record", nil)
		}
		return nil, err
	}
	return record, nil
}

// Create stores a new consultation record.
func (s *ConsultationService) Create(ctx context.Context, actor *auth.Principal, input ConsultationInput) (*domain.ConsultationRecord, error) {
	if err := validateConsultationInput(input); err != nil {
		return nil, err
	}

	record := &domain.ConsultationRecord{
		Consultation: input.Consultation,
		Symptoms:     input.Symptoms,
		Diagnosis:    input.Diagnosis,
		Exams:        input.Exams,
		RecordedAt:   input.RecordedAt,
	}
	if err := s.records.Create(ctx, record); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventConsultationCreated, actor,
		events.ConsultationPayload{RecordID: record.ID, Consultation: record.Consultation})
	return record, nil
}

// Update overwrites an existing consultation record.
func (s *ConsultationService) Update(ctx context.Context, actor *auth.Principal, id int64, input ConsultationInput) (*domain.ConsultationRecord, error) {
	if err := validateConsultationInput(input); err != nil {
		return nil, err
	}

	record, err := s.records.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("consultation record", nil)
		}
		return nil, err
	}

	record.Consultation = input.Consultation
	record.Symptoms = input.Symptoms
	record.Diagnosis = input.Diagnosis
	record.Exams = input.Exams
	record.RecordedAt = input.RecordedAt

	if err := s.records.Update(ctx, record); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("consultation record", nil)
		}
		return nil, err
	}

	s.publish(ctx, events.EventConsultationUpdated, actor,
		events.ConsultationPayload{RecordID: record.ID, Consultation: record.Consultation})
	return record, nil
}

// Delete removes a consultation record by id.
func (s *ConsultationService) Delete(ctx context.Context, actor *auth.Principal, id int64) error {
	if err := s.records.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("consultation record", nil)
		}
		return err
	}
	s.publish(ctx, events.EventConsultationDeleted, actor, events.ConsultationPayload{RecordID: id})
	return nil
}

func validateConsultationInput(input ConsultationInput) error {
	if input.Consultation == "" {
		return apperrors.NewValidationError("consultation is required", nil)
	}
	if input.RecordedAt.IsZero() {
		return apperrors.NewValidationError("recorded_at is required", nil)
	}
	return nil
}

func (s *ConsultationService) publish(ctx context.Context, eventType events.EventType, actor *auth.Principal, payload interface{}) {
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
