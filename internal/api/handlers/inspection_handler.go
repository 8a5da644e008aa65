package handlers

import (
	"github.com/rickd091/mti-portal/internal/dto"
	"github.com/rickd091/mti-portal/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type InspectionHandler struct {
	inspService *service.InspectionService
	logger      *zap.Logger
}

func NewInspectionHandler(inspService *service.InspectionService, logger *zap.Logger) *InspectionHandler {
	return &InspectionHandler{
		inspService: inspService,
		logger:      logger,
	}
}

// Schedule godoc
// @Summary Schedule an inspection
// @Tags inspections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ScheduleInspectionRequest true "Inspection details"
// @Success 201 {object} dto.InspectionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /inspections [post]
func (h *InspectionHandler) Schedule(c *fiber.Ctx) error {
	var req dto.ScheduleInspectionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.inspService.Schedule(c.Context(), &req)
	if err != nil {
		switch err {
		case service.ErrInstitutionNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Institution not found",
			})
		case service.ErrInvalidInspection:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid inspection details",
			})
		}
		h.logger.Error("Failed to schedule inspection", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to schedule inspection",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Record godoc
// @Summary Record an inspection outcome
// @Tags inspections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Inspection ID"
// @Param request body dto.RecordInspectionRequest true "Outcome and findings"
// @Success 200 {object} dto.InspectionResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /inspections/{id}/record [post]
func (h *InspectionHandler) Record(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid inspection ID",
		})
	}

	var req dto.RecordInspectionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.inspService.Record(c.Context(), id, &req)
	if err != nil {
		switch err {
		case service.ErrInspectionNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Inspection not found",
			})
		case service.ErrInspectionNotOpen:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Inspection is not open for recording",
			})
		case service.ErrInvalidInspection:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid inspection outcome",
			})
		}
		h.logger.Error("Failed to record inspection", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to record inspection",
		})
	}

	return c.JSON(resp)
}

// ListByInstitution godoc
// @Summary List an institution's inspections
// @Tags inspections
// @Produce json
// @Security BearerAuth
// @Param id path string true "Institution ID"
// @Success 200 {array} dto.InspectionResponse
// @Router /institutions/{id}/inspections [get]
func (h *InspectionHandler) ListByInstitution(c *fiber.Ctx) error {
	institutionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid institution ID",
		})
	}

	resp, err := h.inspService.ListByInstitution(c.Context(), institutionID)
	if err != nil {
		h.logger.Error("Failed to list inspections", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list inspections",
		})
	}

	return c.JSON(resp)
}
