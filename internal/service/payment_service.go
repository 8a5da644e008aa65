package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rickd091/mti-portal/internal/dto"
	"github.com/rickd091/mti-portal/internal/models"
	"github.com/rickd091/mti-portal/internal/repository"
	"github.com/rickd091/mti-portal/pkg/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
)

type PaymentService struct {
	paymentRepo *repository.PaymentRepository
	instRepo    *repository.InstitutionRepository
	gateway     PaymentGateway
	currency    string
	logger      *zap.Logger
}

func NewPaymentService(
	paymentRepo *repository.PaymentRepository,
	instRepo *repository.InstitutionRepository,
	gateway PaymentGateway,
	cfg config.PaymentConfig,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		instRepo:    instRepo,
		gateway:     gateway,
		currency:    cfg.Currency,
		logger:      logger,
	}
}

// Initiate creates a pending payment record and asks the gateway for a
// checkout URL. The record is persisted even if the gateway rejects the
// request, so an operator can reconcile failed attempts.
func (s *PaymentService) Initiate(ctx context.Context, institutionID uuid.UUID, req *dto.InitiatePaymentRequest) (*dto.PaymentResponse, error) {
	if _, err := s.instRepo.GetByID(ctx, institutionID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInstitutionNotFound
		}
		return nil, err
	}

	now := time.Now()
	payment := &models.Payment{
		ID:            uuid.New(),
		InstitutionID: institutionID,
		Reference:     paymentReference(now),
		AmountCents:   req.AmountCents,
		Currency:      s.currency,
		Status:        models.PaymentPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	checkoutURL, gwErr := s.gateway.Initiate(ctx, payment.Reference, payment.AmountCents, payment.Currency)
	if gwErr != nil {
		payment.Status = models.PaymentFailed
		s.logger.Error("Payment initiation failed",
			zap.String("reference", payment.Reference),
			zap.Error(gwErr),
		)
	}
	payment.CheckoutURL = checkoutURL

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	if gwErr != nil {
		return nil, fmt.Errorf("initiate payment %s: %w", payment.Reference, gwErr)
	}

	s.logger.Info("Payment initiated",
		zap.String("institution_id", institutionID.String()),
		zap.String("reference", payment.Reference),
		zap.Int64("amount_cents", payment.AmountCents),
	)
	return toPaymentResponse(payment), nil
}

// HandleCallback applies the gateway's terminal verdict for a reference.
// Callbacks for already-settled payments are ignored rather than rejected,
// since gateways retry delivery.
func (s *PaymentService) HandleCallback(ctx context.Context, req *dto.PaymentCallbackRequest) (*dto.PaymentResponse, error) {
	status := models.PaymentStatus(req.Status)
	if status != models.PaymentCompleted && status != models.PaymentFailed {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPaymentStatus, req.Status)
	}

	payment, err := s.paymentRepo.GetByReference(ctx, req.Reference)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	if payment.Status != models.PaymentPending {
		return toPaymentResponse(payment), nil
	}

	if err := s.paymentRepo.UpdateStatus(ctx, req.Reference, status); err != nil {
		return nil, err
	}
	payment.Status = status

	s.logger.Info("Payment settled",
		zap.String("reference", payment.Reference),
		zap.String("status", string(status)),
	)
	return toPaymentResponse(payment), nil
}

// Reconcile polls the gateway for a pending payment's current status.
func (s *PaymentService) Reconcile(ctx context.Context, reference string) (*dto.PaymentResponse, error) {
	payment, err := s.paymentRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	if payment.Status != models.PaymentPending {
		return toPaymentResponse(payment), nil
	}

	remote, err := s.gateway.Status(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("query gateway for %s: %w", reference, err)
	}

	status := models.PaymentStatus(remote)
	if status == models.PaymentCompleted || status == models.PaymentFailed {
		if err := s.paymentRepo.UpdateStatus(ctx, reference, status); err != nil {
			return nil, err
		}
		payment.Status = status
	}
	return toPaymentResponse(payment), nil
}

func (s *PaymentService) ListByInstitution(ctx context.Context, institutionID uuid.UUID) ([]*dto.PaymentResponse, error) {
	payments, err := s.paymentRepo.ListByInstitution(ctx, institutionID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.PaymentResponse, len(payments))
	for i, payment := range payments {
		responses[i] = toPaymentResponse(payment)
	}
	return responses, nil
}

func paymentReference(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:10])
	return fmt.Sprintf("PAY-%s-%s", now.Format("20060102"), suffix)
}

func toPaymentResponse(payment *models.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:          payment.ID.String(),
		Reference:   payment.Reference,
		AmountCents: payment.AmountCents,
		Currency:    payment.Currency,
		Status:      string(payment.Status),
		CheckoutURL: payment.CheckoutURL,
		CreatedAt:   payment.CreatedAt.Format(time.RFC3339),
	}
}
