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

var certificateColumns = []string{
	"id", "institution_id", "certificate_no", "issued_at", "expires_at",
	"status", "created_at", "updated_at",
}

type CertificateRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewCertificateRepository(db *pgxpool.Pool, logger *zap.Logger) *CertificateRepository {
	return &CertificateRepository{
		db:     db,
		logger: logger,
	}
}

func (r *CertificateRepository) Create(ctx context.Context, cert *models.Certificate) error {
	query := squirrel.Insert("certificates").
		Columns(certificateColumns...).
		Values(cert.ID, cert.InstitutionID, cert.CertificateNo, cert.IssuedAt, cert.ExpiresAt,
			cert.Status, cert.CreatedAt, cert.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *CertificateRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Certificate, error) {
	query := squirrel.Select(certificateColumns...).
		From("certificates").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var cert models.Certificate
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&cert.ID, &cert.InstitutionID, &cert.CertificateNo, &cert.IssuedAt, &cert.ExpiresAt,
		&cert.Status, &cert.CreatedAt, &cert.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &cert, nil
}

func (r *CertificateRepository) ListByInstitution(ctx context.Context, institutionID uuid.UUID) ([]*models.Certificate, error) {
	query := squirrel.Select(certificateColumns...).
		From("certificates").
		Where(squirrel.Eq{"institution_id": institutionID}).
		OrderBy("issued_at DESC").
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

	var certificates []*models.Certificate
	for rows.Next() {
		var cert models.Certificate
		if err := rows.Scan(
			&cert.ID, &cert.InstitutionID, &cert.CertificateNo, &cert.IssuedAt, &cert.ExpiresAt,
			&cert.Status, &cert.CreatedAt, &cert.UpdatedAt,
		); err != nil {
			return nil, err
		}
		certificates = append(certificates, &cert)
	}

	return certificates, rows.Err()
}

func (r *CertificateRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.CertificateStatus) error {
	query := squirrel.Update("certificates").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
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
