package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/caminhar/clinic-api/internal/api/dto"
	"github.com/caminhar/clinic-api/internal/auth"
	"github.com/caminhar/clinic-api/internal/service"
	apperrors "github.com/caminhar/clinic-api/pkg/util"
)

// ConsultationsHandler exposes consultation record CRUD endpoints.
type ConsultationsHandler struct {
	records *service.ConsultationService
}

// NewConsultationsHandler constructs the handler.
func NewConsultationsHandler(consultationService *service.ConsultationService) *ConsultationsHandler {
	return &ConsultationsHandler{records: consultationService}
}

// List handles GET /consultations.
func (h *ConsultationsHandler) List(c *fiber.Ctx) error {
	records, err := h.records.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewConsultationResponseList(records)})
}

// Get handles GET /consultations/:id.
func (h *ConsultationsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	record, err := h.records.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewConsultationResponse(*record)})
}

// Create handles POST /consultations.
func (h *ConsultationsHandler) Create(c *fiber.Ctx) error {
	input, err := parseConsultationRequest(c)
	if err != nil {
		return err
	}

	principal, _ := auth.PrincipalFromContext(c)
	record, err := h.records.Create(c.UserContext(), principal, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewConsultationResponse(*record)})
}

// Update handles PUT /consultations/:id.
func (h *ConsultationsHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	input, err := parseConsultationRequest(c)
	if err != nil {
		return err
	}

	principal, _ := auth.PrincipalFromContext(c)
	record, err := h.records.Update(c.UserContext(), principal, id, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewConsultationResponse(*record)})
}

// Delete handles DELETE /consultations/:id.
func (h *ConsultationsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	principal, _ := auth.PrincipalFromContext(c)
	if err := h.records.Delete(c.UserContext(), principal, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseConsultationRequest(c *fiber.Ctx) (service.ConsultationInput, error) {
	var req dto.ConsultationRequest
	if err := c.BodyParser(&req); err != nil {
		return service.ConsultationInput{}, apperrors.NewValidationError("invalid payload", nil)
	}

	recordedAt, err := dto.ParseDate(req.RecordedAt)
	if err != nil {
		return service.ConsultationInput{}, apperrors.NewValidationError("recorded_at must be YYYY-MM-DD", nil)
	}

	return service.ConsultationInput{
		Consultation: req.Consultation,
		Symptoms:     req.Symptoms,
		Diagnosis:    req.Diagnosis,
		Exams:        req.Exams,
		RecordedAt:   recordedAt,
	}, nil
}
