package handlers

import (
	"errors"

	"github.com/rickd091/mti-portal/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CertificateHandler struct {
	certService *service.CertificateService
	logger      *zap.Logger
}

func NewCertificateHandler(certService *service.CertificateService, logger *zap.Logger) *CertificateHandler {
	return &CertificateHandler{
		certService: certService,
		logger:      logger,
	}
}

// Issue godoc
// @Summary Issue an accreditation certificate
// @Description Requires an approved application with no expired documents.
// @Tags certificates
// @Produce json
// @Security BearerAuth
// @Param id path string true "Institution ID"
// @Success 201 {object} dto.CertificateResponse
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /institutions/{id}/certificates [post]
func (h *CertificateHandler) Issue(c *fiber.Ctx) error {
	institutionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid institution ID",
		})
	}

	resp, err := h.certService.Issue(c.Context(), institutionID)
	if err != nil {
		switch {
		case err == service.ErrInstitutionNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Institution not found",
			})
		case errors.Is(err, service.ErrNotEligible):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		h.logger.Error("Failed to issue certificate", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to issue certificate",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Revoke godoc
// @Summary Revoke a certificate
// @Tags certificates
// @Produce json
// @Security BearerAuth
// @Param id path string true "Certificate ID"
// @Success 200 {object} dto.CertificateResponse
// @Failure 404 {object} map[string]string
// @Router /certificates/{id}/revoke [post]
func (h *CertificateHandler) Revoke(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid certificate ID",
		})
	}

	resp, err := h.certService.Revoke(c.Context(), id)
	if err != nil {
		if err == service.ErrCertificateNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Certificate not found",
			})
		}
		h.logger.Error("Failed to revoke certificate", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to revoke certificate",
		})
	}

	return c.JSON(resp)
}

// ListByInstitution godoc
// @Summary List an institution's certificates
// @Tags certificates
// @Produce json
// @Security BearerAuth
// @Param id path string true "Institution ID"
// @Success 200 {array} dto.CertificateResponse
// @Router /institutions/{id}/certificates [get]
func (h *CertificateHandler) ListByInstitution(c *fiber.Ctx) error {
	institutionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid institution ID",
		})
	}

	resp, err := h.certService.ListByInstitution(c.Context(), institutionID)
	if err != nil {
		h.logger.Error("Failed to list certificates", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list certificates",
		})
	}

	return c.JSON(resp)
}
