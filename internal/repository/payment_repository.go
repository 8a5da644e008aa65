package repository

import (
	"context"
	"errors"

	"github.com/rickd091/mti-portal/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var paymentColumns = []string{
	"id", "institution_id", "reference", "amount_cents", "currency",
	"status", "checkout_url", "created_at", "updated_at",
}

type PaymentRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPaymentRepository(db *pgxpool.Pool, logger *zap.Logger) *PaymentRepository {
	return &PaymentRepository{
		db:     db,
		logger: logger,
	}
}

func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	query := squirrel.Insert("payments").
		Columns(paymentColumns...).
		Values(payment.ID, payment.InstitutionID, payment.Reference, payment.AmountCents,
			payment.Currency, payment.Status, payment.CheckoutURL, payment.CreatedAt, payment.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *PaymentRepository) GetByReference(ctx context.Context, reference string) (*models.Payment, error) {
	query := squirrel.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{"reference": reference}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var payment models.Payment
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&payment.ID, &payment.InstitutionID, &payment.Reference, &payment.AmountCents,
		&payment.Currency, &payment.Status, &payment.CheckoutURL, &payment.CreatedAt, &payment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &payment, nil
}

func (r *PaymentRepository) ListByInstitution(ctx context.Context, institutionID uuid.UUID) ([]*models.Payment, error) {
	query := squirrel.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{"institution_id": institutionID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		var payment models.Payment
		if err := rows.Scan(
			&payment.ID, &payment.InstitutionID, &payment.Reference, &payment.AmountCents,
			&payment.Currency, &payment.Status, &payment.CheckoutURL, &payment.CreatedAt, &payment.UpdatedAt,
		); err != nil {
			return nil, err
		}
		payments = append(payments, &payment)
	}

	return payments, rows.Err()
}

func (r *PaymentRepository) UpdateStatus(ctx context.Context, reference string, status models.PaymentStatus) error {
	query := squirrel.Update("payments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"reference": reference}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
