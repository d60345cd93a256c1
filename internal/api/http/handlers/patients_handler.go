package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/caminhar/clinic-api/internal/api/dto"
	"github.com/caminhar/clinic-api/internal/auth"
	"github.com/caminhar/clinic-api/internal/service"
	apperrors "github.com/caminhar/clinic-api/pkg/util"
)

// PatientsHandler exposes patient CRUD endpoints.
type PatientsHandler struct {
	patients *service.PatientService
}

// NewPatientsHandler constructs the handler.
func NewPatientsHandler(patientService *service.PatientService) *PatientsHandler {
	return &PatientsHandler{patients: patientService}
}

// List handles GET /patients.
func (h *PatientsHandler) List(c *fiber.Ctx) error {
	patients, err := h.patients.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPatientResponseList(patients)})
}

// Get handles GET /patients/:id.
func (h *PatientsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	patient, err := h.patients.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPatientResponse(*patient)})
}

// Create handles POST /patients.
func (h *PatientsHandler) Create(c *fiber.Ctx) error {
	input, err := parsePatientRequest(c)
	if err != nil {
		return err
	}

	principal, _ := auth.PrincipalFromContext(c)
	patient, err := h.patients.Create(c.UserContext(), principal, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewPatientResponse(*patient)})
}

// Update handles PUT /patients/:id.
func (h *PatientsHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	input, err := parsePatientRequest(c)
	if err != nil {
		return err
	}

	principal, _ := auth.PrincipalFromContext(c)
	patient, err := h.patients.Update(c.UserContext(), principal, id, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPatientResponse(*patient)})
}

// Delete handles DELETE /patients/:id.
func (h *PatientsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	principal, _ := auth.PrincipalFromContext(c)
	if err := h.patients.Delete(c.UserContext(), principal, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parsePatientRequest(c *fiber.Ctx) (service.PatientInput, error) {
	var req dto.PatientRequest
	if err := c.BodyParser(&req); err != nil {
		return service.PatientInput{}, apperrors.NewValidationError("invalid payload", nil)
	}

	birthDate, err := dto.ParseDate(req.BirthDate)
	if err != nil {
		return service.PatientInput{}, apperrors.NewValidationError("birth_date must be YYYY-MM-DD", nil)
	}

	return service.PatientInput{
		Name:       req.Name,
		CPF:        req.CPF,
		BirthDate:  birthDate,
		PostalCode: req.PostalCode,
		Phone:      req.Phone,
		Address:    req.Address,
		Notes:      req.Notes,
		Deceased:   req.Deceased,
	}, nil
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid id", nil)
	}
	return id, nil
}
