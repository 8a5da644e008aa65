package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rickd091/mti-portal/internal/dto"
	"github.com/rickd091/mti-portal/internal/models"
	"github.com/rickd091/mti-portal/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInspectionNotFound = errors.New("inspection not found")
	ErrInspectionNotOpen  = errors.New("inspection is not open for recording")
	ErrInvalidInspection  = errors.New("invalid inspection request")
)

type InspectionService struct {
	inspRepo *repository.InspectionRepository
	instRepo *repository.InstitutionRepository
	logger   *zap.Logger
}

func NewInspectionService(inspRepo *repository.InspectionRepository, instRepo *repository.InstitutionRepository, logger *zap.Logger) *InspectionService {
	return &InspectionService{
		inspRepo: inspRepo,
		instRepo: instRepo,
		logger:   logger,
	}
}

func (s *InspectionService) Schedule(ctx context.Context, req *dto.ScheduleInspectionRequest) (*dto.InspectionResponse, error) {
	institutionID, err := uuid.Parse(req.InstitutionID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad institution id", ErrInvalidInspection)
	}

	scheduledFor, err := time.Parse(time.RFC3339, req.ScheduledFor)
	if err != nil {
		return nil, fmt.Errorf("%w: scheduled_for must be RFC3339", ErrInvalidInspection)
	}

	if _, err := s.instRepo.GetByID(ctx, institutionID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInstitutionNotFound
		}
		return nil, err
	}

	now := time.Now()
	insp := &models.Inspection{
		ID:            uuid.New(),
		InstitutionID: institutionID,
		ScheduledFor:  scheduledFor,
		Inspector:     sanitizeUTF8(req.Inspector),
		Status:        models.InspectionScheduled,
		Outcome:       models.OutcomePending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.inspRepo.Create(ctx, insp); err != nil {
		return nil, err
	}

	s.logger.Info("Inspection scheduled",
		zap.String("id", insp.ID.String()),
		zap.String("institution_id", institutionID.String()),
		zap.Time("scheduled_for", scheduledFor),
	)
	return toInspectionResponse(insp), nil
}

func (s *InspectionService) Record(ctx context.Context, id uuid.UUID, req *dto.RecordInspectionRequest) (*dto.InspectionResponse, error) {
	insp, err := s.inspRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInspectionNotFound
		}
		return nil, err
	}

	if insp.Status != models.InspectionScheduled {
		return nil, ErrInspectionNotOpen
	}

	insp.Status = models.InspectionCompleted
	insp.Findings = sanitizeUTF8(req.Findings)
	insp.Outcome = models.InspectionOutcome(req.Outcome)

	if err := s.inspRepo.Update(ctx, insp); err != nil {
		return nil, err
	}
	return toInspectionResponse(insp), nil
}

func (s *InspectionService) ListByInstitution(ctx context.Context, institutionID uuid.UUID) ([]*dto.InspectionResponse, error) {
	inspections, err := s.inspRepo.ListByInstitution(ctx, institutionID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.InspectionResponse, len(inspections))
	for i, insp := range inspections {
		responses[i] = toInspectionResponse(insp)
	}
	return responses, nil
}

func toInspectionResponse(insp *models.Inspection) *dto.InspectionResponse {
	return &dto.InspectionResponse{
		ID:            insp.ID.String(),
		InstitutionID: insp.InstitutionID.String(),
		ScheduledFor:  insp.ScheduledFor.Format(time.RFC3339),
		Inspector:     insp.Inspector,
		Status:        string(insp.Status),
		Findings:      insp.Findings,
		Outcome:       string(insp.Outcome),
		CreatedAt:     insp.CreatedAt.Format(time.RFC3339),
	}
}
