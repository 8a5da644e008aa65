package handlers

import (
	"errors"
	"mime/multipart"
	"time"

	"github.com/rickd091/mti-portal/internal/dto"
	"github.com/rickd091/mti-portal/internal/lifecycle"
	"github.com/rickd091/mti-portal/internal/models"
	"github.com/rickd091/mti-portal/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DocumentHandler struct {
	docService *service.DocumentService
	logger     *zap.Logger
}

func NewDocumentHandler(docService *service.DocumentService, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		docService: docService,
		logger:     logger,
	}
}

// Upload godoc
// @Summary Upload a document batch
// @Description Validate and upload up to the configured number of files. Each
// @Description accepted file returns a progress id that can be polled.
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Institution ID"
// @Param category formData string true "Document category"
// @Param files formData file true "Files to upload"
// @Param keys formData string false "Logical document keys, parallel to files"
// @Param expiry_dates formData string false "RFC3339 expiry dates, parallel to files"
// @Success 202 {object} dto.UploadBatchResponse
// @Failure 400 {object} map[string]string
// @Router /institutions/{id}/documents [post]
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	institutionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid institution ID",
		})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid multipart form",
		})
	}

	files := form.File["files"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No files provided",
		})
	}

	category := models.DocumentCategory(c.FormValue("category"))
	if _, ok := models.CategoryLabels[category]; !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid document category",
		})
	}

	keys := form.Value["keys"]
	expiryDates := form.Value["expiry_dates"]
	user, _ := c.Locals("username").(string)

	inputs := make([]service.UploadInput, 0, len(files))
	opened := make([]multipart.File, 0, len(files))
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()

	for i, fh := range files {
		in := service.UploadInput{
			Name:      fh.Filename,
			Category:  category,
			MimeType:  fh.Header.Get("Content-Type"),
			SizeBytes: fh.Size,
			User:      user,
		}
		if i < len(keys) {
			in.Key = keys[i]
		}
		if i < len(expiryDates) && expiryDates[i] != "" {
			expiry, err := time.Parse(time.RFC3339, expiryDates[i])
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "Invalid expiry date for " + fh.Filename,
				})
			}
			in.ExpiryDate = &expiry
		}

		f, err := fh.Open()
		if err != nil {
			h.logger.Error("Failed to open uploaded file",
				zap.String("file", fh.Filename), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to read uploaded file",
			})
		}
		opened = append(opened, f)
		in.Content = f
		inputs = append(inputs, in)
	}

	resp, err := h.docService.UploadBatch(c.Context(), institutionID, inputs)
	if err != nil {
		h.logger.Error("Upload batch failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Upload failed",
		})
	}

	return c.Status(fiber.StatusAccepted).JSON(resp)
}

// Progress godoc
// @Summary Poll upload progress
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Param progressID path string true "Progress ID"
// @Success 200 {object} dto.UploadProgressResponse
// @Failure 404 {object} map[string]string
// @Router /uploads/{progressID} [get]
func (h *DocumentHandler) Progress(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("progressID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid progress ID",
		})
	}

	resp, err := h.docService.Progress(id)
	if err != nil {
		if err == service.ErrProgressNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Upload not found",
			})
		}
		h.logger.Error("Failed to get upload progress", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get progress",
		})
	}

	return c.JSON(resp)
}

// List godoc
// @Summary List an institution's documents
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Institution ID"
// @Success 200 {array} dto.DocumentResponse
// @Router /institutions/{id}/documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	institutionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid institution ID",
		})
	}

	resp, err := h.docService.ListDocuments(c.Context(), institutionID)
	if err != nil {
		h.logger.Error("Failed to list documents", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list documents",
		})
	}

	return c.JSON(resp)
}

// Get godoc
// @Summary Get one document with its workflow history
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Institution ID"
// @Param key path string true "Document key"
// @Success 200 {object} dto.DocumentResponse
// @Failure 404 {object} map[string]string
// @Router /institutions/{id}/documents/{key} [get]
func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	institutionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid institution ID",
		})
	}

	resp, err := h.docService.GetDocument(c.Context(), institutionID, c.Params("key"))
	if err != nil {
		if err == service.ErrDocumentNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Document not found",
			})
		}
		h.logger.Error("Failed to get document", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get document",
		})
	}

	return c.JSON(resp)
}

// Transition godoc
// @Summary Move a document through its review workflow
// @Tags documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Institution ID"
// @Param key path string true "Document key"
// @Param request body dto.TransitionRequest true "Target workflow state"
// @Success 200 {object} dto.DocumentResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /institutions/{id}/documents/{key}/transition [post]
func (h *DocumentHandler) Transition(c *fiber.Ctx) error {
	institutionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid institution ID",
		})
	}

	var req dto.TransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	state := models.WorkflowState(req.State)
	if !state.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown workflow state",
		})
	}

	user, _ := c.Locals("username").(string)
	resp, err := h.docService.Transition(c.Context(), institutionID, c.Params("key"), state, user)
	if err != nil {
		switch {
		case err == service.ErrDocumentNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Document not found",
			})
		case errors.Is(err, lifecycle.ErrInvalidTransition), errors.Is(err, lifecycle.ErrInvalidState):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		h.logger.Error("Transition failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Transition failed",
		})
	}

	return c.JSON(resp)
}

// RequestRenewal godoc
// @Summary Flag a document for renewal
// @Description Repeated requests refresh the request timestamp without
// @Description emitting a duplicate notification.
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Institution ID"
// @Param key path string true "Document key"
// @Success 200 {object} dto.DocumentResponse
// @Failure 404 {object} map[string]string
// @Router /institutions/{id}/documents/{key}/renewal [post]
func (h *DocumentHandler) RequestRenewal(c *fiber.Ctx) error {
	institutionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid institution ID",
		})
	}

	user, _ := c.Locals("username").(string)
	resp, err := h.docService.RequestRenewal(c.Context(), institutionID, c.Params("key"), user)
	if err != nil {
		if err == service.ErrDocumentNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Document not found",
			})
		}
		h.logger.Error("Renewal request failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Renewal request failed",
		})
	}

	return c.JSON(resp)
}
