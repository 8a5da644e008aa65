package handlers

import (
	"github.com/rickd091/mti-portal/internal/dto"
	"github.com/rickd091/mti-portal/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	paymentService *service.PaymentService
	logger         *zap.Logger
}

func NewPaymentHandler(paymentService *service.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

// Initiate godoc
// @Summary Initiate an accreditation fee payment
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Institution ID"
// @Param request body dto.InitiatePaymentRequest true "Payment amount"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /institutions/{id}/payments [post]
func (h *PaymentHandler) Initiate(c *fiber.Ctx) error {
	institutionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid institution ID",
		})
	}

	var req dto.InitiatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.AmountCents <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Amount must be positive",
		})
	}

	resp, err := h.paymentService.Initiate(c.Context(), institutionID, &req)
	if err != nil {
		if err == service.ErrInstitutionNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Institution not found",
			})
		}
		h.logger.Error("Payment initiation failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Payment initiation failed",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Callback godoc
// @Summary Gateway settlement callback
// @Description Unauthenticated endpoint the payment gateway calls with the
// @Description terminal verdict for a reference. Duplicate deliveries are
// @Description acknowledged without changing the record.
// @Tags payments
// @Accept json
// @Produce json
// @Param request body dto.PaymentCallbackRequest true "Settlement verdict"
// @Success 200 {object} dto.PaymentResponse
// @Failure 404 {object} map[string]string
// @Router /payments/callback [post]
func (h *PaymentHandler) Callback(c *fiber.Ctx) error {
	var req dto.PaymentCallbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.paymentService.HandleCallback(c.Context(), &req)
	if err != nil {
		switch err {
		case service.ErrPaymentNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Payment not found",
			})
		case service.ErrInvalidPaymentStatus:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid payment status",
			})
		}
		h.logger.Error("Payment callback failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Payment callback failed",
		})
	}

	return c.JSON(resp)
}

// Reconcile godoc
// @Summary Poll the gateway for a pending payment
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param reference path string true "Payment reference"
// @Success 200 {object} dto.PaymentResponse
// @Failure 404 {object} map[string]string
// @Router /payments/{reference}/reconcile [post]
func (h *PaymentHandler) Reconcile(c *fiber.Ctx) error {
	resp, err := h.paymentService.Reconcile(c.Context(), c.Params("reference"))
	if err != nil {
		if err == service.ErrPaymentNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Payment not found",
			})
		}
		h.logger.Error("Payment reconciliation failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Payment reconciliation failed",
		})
	}

	return c.JSON(resp)
}

// ListByInstitution godoc
// @Summary List an institution's payments
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Institution ID"
// @Success 200 {array} dto.PaymentResponse
// @Router /institutions/{id}/payments [get]
func (h *PaymentHandler) ListByInstitution(c *fiber.Ctx) error {
	institutionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid institution ID",
		})
	}

	resp, err := h.paymentService.ListByInstitution(c.Context(), institutionID)
	if err != nil {
		h.logger.Error("Failed to list payments", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list payments",
		})
	}

	return c.JSON(resp)
}
