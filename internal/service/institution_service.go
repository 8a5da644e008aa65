package service

import (
	"context"
	"errors"
	"time"

	"github.com/rickd091/mti-portal/internal/dto"
	"github.com/rickd091/mti-portal/internal/models"
	"github.com/rickd091/mti-portal/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInstitutionNotFound = errors.New("institution not found")
	ErrInvalidStatus       = errors.New("invalid application status")
)

var applicationStatuses = map[models.ApplicationStatus]bool{
	models.ApplicationDraft:       true,
	models.ApplicationSubmitted:   true,
	models.ApplicationUnderReview: true,
	models.ApplicationApproved:    true,
	models.ApplicationRejected:    true,
}

type InstitutionService struct {
	instRepo *repository.InstitutionRepository
	logger   *zap.Logger
}

func NewInstitutionService(instRepo *repository.InstitutionRepository, logger *zap.Logger) *InstitutionService {
	return &InstitutionService{
		instRepo: instRepo,
		logger:   logger,
	}
}

func (s *InstitutionService) Register(ctx context.Context, req *dto.RegisterInstitutionRequest) (*dto.InstitutionResponse, error) {
	now := time.Now()
	inst := &models.Institution{
		ID:             uuid.New(),
		Name:           sanitizeUTF8(req.Name),
		RegistrationNo: req.RegistrationNo,
		Type:           models.InstitutionType(req.Type),
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        sanitizeUTF8(req.Address),
		ContactPerson:  sanitizeUTF8(req.ContactPerson),
		Status:         models.ApplicationDraft,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.instRepo.Create(ctx, inst); err != nil {
		return nil, err
	}

	s.logger.Info("Institution registered",
		zap.String("id", inst.ID.String()),
		zap.String("name", inst.Name),
	)
	return toInstitutionResponse(inst), nil
}

func (s *InstitutionService) Get(ctx context.Context, id uuid.UUID) (*dto.InstitutionResponse, error) {
	inst, err := s.instRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInstitutionNotFound
		}
		return nil, err
	}
	return toInstitutionResponse(inst), nil
}

func (s *InstitutionService) List(ctx context.Context, limit, offset int) ([]*dto.InstitutionResponse, error) {
	institutions, err := s.instRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.InstitutionResponse, len(institutions))
	for i, inst := range institutions {
		responses[i] = toInstitutionResponse(inst)
	}
	return responses, nil
}

func (s *InstitutionService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) (*dto.InstitutionResponse, error) {
	if !applicationStatuses[status] {
		return nil, ErrInvalidStatus
	}

	if err := s.instRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInstitutionNotFound
		}
		return nil, err
	}

	inst, err := s.instRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toInstitutionResponse(inst), nil
}

func toInstitutionResponse(inst *models.Institution) *dto.InstitutionResponse {
	return &dto.InstitutionResponse{
		ID:             inst.ID.String(),
		Name:           inst.Name,
		RegistrationNo: inst.RegistrationNo,
		Type:           string(inst.Type),
		Email:          inst.Email,
		Phone:          inst.Phone,
		Address:        inst.Address,
		ContactPerson:  inst.ContactPerson,
		Status:         string(inst.Status),
		CreatedAt:      inst.CreatedAt.Format(time.RFC3339),
	}
}
