package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rickd091/mti-portal/internal/dto"
	"github.com/rickd091/mti-portal/internal/lifecycle"
	"github.com/rickd091/mti-portal/internal/models"
	"github.com/rickd091/mti-portal/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrCertificateNotFound = errors.New("certificate not found")
	ErrNotEligible         = errors.New("institution not eligible for certificate")
)

// certificateValidity is how long an accreditation certificate stays valid.
const certificateValidity = 3 * 365 * 24 * time.Hour

type CertificateService struct {
	certRepo *repository.CertificateRepository
	instRepo *repository.InstitutionRepository
	docRepo  *repository.DocumentRepository
	typeRepo *repository.DocumentTypeRepository
	warnDays int
	clock    lifecycle.Clock
	logger   *zap.Logger
}

func NewCertificateService(
	certRepo *repository.CertificateRepository,
	instRepo *repository.InstitutionRepository,
	docRepo *repository.DocumentRepository,
	typeRepo *repository.DocumentTypeRepository,
	warnDays int,
	clock lifecycle.Clock,
	logger *zap.Logger,
) *CertificateService {
	if clock == nil {
		clock = lifecycle.SystemClock()
	}
	return &CertificateService{
		certRepo: certRepo,
		instRepo: instRepo,
		docRepo:  docRepo,
		typeRepo: typeRepo,
		warnDays: warnDays,
		clock:    clock,
		logger:   logger,
	}
}

// Issue grants an accreditation certificate. The application must be
// approved, every required catalog type must have a document on file, and
// no document may be expired; an expiring-soon document does not block
// issuance.
func (s *CertificateService) Issue(ctx context.Context, institutionID uuid.UUID) (*dto.CertificateResponse, error) {
	inst, err := s.instRepo.GetByID(ctx, institutionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInstitutionNotFound
		}
		return nil, err
	}
	if inst.Status != models.ApplicationApproved {
		return nil, fmt.Errorf("%w: application status is %s", ErrNotEligible, inst.Status)
	}

	docs, err := s.docRepo.ListByInstitution(ctx, institutionID)
	if err != nil {
		return nil, err
	}

	required, err := s.typeRepo.ListRequired(ctx)
	if err != nil {
		return nil, err
	}
	onFile := make(map[string]bool, len(docs))
	for _, d := range docs {
		onFile[d.Key] = true
	}
	for _, dt := range required {
		if !onFile[dt.Key] {
			return nil, fmt.Errorf("%w: missing required document %s", ErrNotEligible, dt.Key)
		}
	}

	flat := make([]models.DocumentRecord, len(docs))
	for i, d := range docs {
		flat[i] = *d
	}
	summary := lifecycle.Summarize(flat, s.clock.Now(), s.warnDays)
	if summary.ByStatus[models.StatusExpired] > 0 {
		return nil, fmt.Errorf("%w: %d expired documents", ErrNotEligible, summary.ByStatus[models.StatusExpired])
	}

	now := s.clock.Now()
	cert := &models.Certificate{
		ID:            uuid.New(),
		InstitutionID: institutionID,
		CertificateNo: certificateNumber(now),
		IssuedAt:      now,
		ExpiresAt:     now.Add(certificateValidity),
		Status:        models.CertificateActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.certRepo.Create(ctx, cert); err != nil {
		return nil, err
	}

	s.logger.Info("Certificate issued",
		zap.String("institution_id", institutionID.String()),
		zap.String("certificate_no", cert.CertificateNo),
	)
	return toCertificateResponse(cert), nil
}

func (s *CertificateService) Revoke(ctx context.Context, id uuid.UUID) (*dto.CertificateResponse, error) {
	if err := s.certRepo.UpdateStatus(ctx, id, models.CertificateRevoked); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCertificateNotFound
		}
		return nil, err
	}

	cert, err := s.certRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCertificateResponse(cert), nil
}

func (s *CertificateService) ListByInstitution(ctx context.Context, institutionID uuid.UUID) ([]*dto.CertificateResponse, error) {
	certificates, err := s.certRepo.ListByInstitution(ctx, institutionID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.CertificateResponse, len(certificates))
	for i, cert := range certificates {
		responses[i] = toCertificateResponse(cert)
	}
	return responses, nil
}

func certificateNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("MTI-%d-%s", now.Year(), suffix)
}

func toCertificateResponse(cert *models.Certificate) *dto.CertificateResponse {
	return &dto.CertificateResponse{
		ID:            cert.ID.String(),
		InstitutionID: cert.InstitutionID.String(),
		CertificateNo: cert.CertificateNo,
		IssuedAt:      cert.IssuedAt.Format(time.RFC3339),
		ExpiresAt:     cert.ExpiresAt.Format(time.RFC3339),
		Status:        string(cert.Status),
	}
}
