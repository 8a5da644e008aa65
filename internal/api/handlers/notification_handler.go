package handlers

import (
	"github.com/rickd091/mti-portal/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	docService *service.DocumentService
	logger     *zap.Logger
}

func NewNotificationHandler(docService *service.DocumentService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		docService: docService,
		logger:     logger,
	}
}

// List godoc
// @Summary List expiry notifications
// @Description By default only documents requiring action are returned.
// @Description Pass all=true to include valid documents as well.
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Institution ID"
// @Param all query bool false "Include documents that need no action"
// @Success 200 {array} dto.NotificationResponse
// @Router /institutions/{id}/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	institutionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid institution ID",
		})
	}

	resp, err := h.docService.Notifications(c.Context(), institutionID, c.QueryBool("all"))
	if err != nil {
		h.logger.Error("Failed to list notifications", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list notifications",
		})
	}

	return c.JSON(resp)
}

// Summary godoc
// @Summary Document status summary
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Institution ID"
// @Success 200 {object} dto.SummaryResponse
// @Router /institutions/{id}/summary [get]
func (h *NotificationHandler) Summary(c *fiber.Ctx) error {
	institutionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid institution ID",
		})
	}

	resp, err := h.docService.Summary(c.Context(), institutionID)
	if err != nil {
		h.logger.Error("Failed to build summary", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build summary",
		})
	}

	return c.JSON(resp)
}

// Events godoc
// @Summary List active transient events
// @Description Returns the in-memory feed of upload and renewal events.
// @Description Pass grouped=true to bucket them by group key.
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Institution ID"
// @Param grouped query bool false "Group events by key"
// @Success 200 {array} dto.EventResponse
// @Router /institutions/{id}/events [get]
func (h *NotificationHandler) Events(c *fiber.Ctx) error {
	institutionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid institution ID",
		})
	}

	resp, err := h.docService.Events(c.Context(), institutionID, c.QueryBool("grouped"))
	if err != nil {
		h.logger.Error("Failed to list events", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list events",
		})
	}

	return c.JSON(resp)
}
