package handlers

import (
	"github.com/rickd091/mti-portal/internal/dto"
	"github.com/rickd091/mti-portal/internal/models"
	"github.com/rickd091/mti-portal/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type InstitutionHandler struct {
	instService *service.InstitutionService
	logger      *zap.Logger
}

func NewInstitutionHandler(instService *service.InstitutionService, logger *zap.Logger) *InstitutionHandler {
	return &InstitutionHandler{
		instService: instService,
		logger:      logger,
	}
}

// Register godoc
// @Summary Register an institution
// @Description Create a new accreditation application in draft status
// @Tags institutions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RegisterInstitutionRequest true "Institution details"
// @Success 201 {object} dto.InstitutionResponse
// @Failure 400 {object} map[string]string
// @Router /institutions [post]
func (h *InstitutionHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterInstitutionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.instService.Register(c.Context(), &req)
	if err != nil {
		h.logger.Error("Institution registration failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Registration failed",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Get godoc
// @Summary Get an institution
// @Tags institutions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Institution ID"
// @Success 200 {object} dto.InstitutionResponse
// @Failure 404 {object} map[string]string
// @Router /institutions/{id} [get]
func (h *InstitutionHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid institution ID",
		})
	}

	resp, err := h.instService.Get(c.Context(), id)
	if err != nil {
		if err == service.ErrInstitutionNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Institution not found",
			})
		}
		h.logger.Error("Failed to get institution", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get institution",
		})
	}

	return c.JSON(resp)
}

// List godoc
// @Summary List institutions
// @Tags institutions
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} dto.InstitutionResponse
// @Router /institutions [get]
func (h *InstitutionHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	resp, err := h.instService.List(c.Context(), limit, offset)
	if err != nil {
		h.logger.Error("Failed to list institutions", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list institutions",
		})
	}

	return c.JSON(resp)
}

// UpdateStatus godoc
// @Summary Update application status
// @Description Move an accreditation application to a new status
// @Tags institutions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Institution ID"
// @Param request body dto.UpdateApplicationStatusRequest true "New status"
// @Success 200 {object} dto.InstitutionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /institutions/{id}/status [patch]
func (h *InstitutionHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid institution ID",
		})
	}

	var req dto.UpdateApplicationStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.instService.UpdateStatus(c.Context(), id, models.ApplicationStatus(req.Status))
	if err != nil {
		switch err {
		case service.ErrInstitutionNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Institution not found",
			})
		case service.ErrInvalidStatus:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid application status",
			})
		}
		h.logger.Error("Failed to update application status", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update status",
		})
	}

	return c.JSON(resp)
}
