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

var institutionColumns = []string{
	"id", "name", "registration_no", "institution_type", "email", "phone",
	"address", "contact_person", "status", "created_at", "updated_at",
}

type InstitutionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewInstitutionRepository(db *pgxpool.Pool, logger *zap.Logger) *InstitutionRepository {
	return &InstitutionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *InstitutionRepository) Create(ctx context.Context, inst *models.Institution) error {
	query := squirrel.Insert("institutions").
		Columns(institutionColumns...).
		Values(inst.ID, inst.Name, inst.RegistrationNo, inst.Type, inst.Email, inst.Phone,
			inst.Address, inst.ContactPerson, inst.Status, inst.CreatedAt, inst.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *InstitutionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Institution, error) {
	query := squirrel.Select(institutionColumns...).
		From("institutions").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var inst models.Institution
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&inst.ID, &inst.Name, &inst.RegistrationNo, &inst.Type, &inst.Email, &inst.Phone,
		&inst.Address, &inst.ContactPerson, &inst.Status, &inst.CreatedAt, &inst.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &inst, nil
}

func (r *InstitutionRepository) List(ctx context.Context, limit, offset int) ([]*models.Institution, error) {
	query := squirrel.Select(institutionColumns...).
		From("institutions").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
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

	var institutions []*models.Institution
	for rows.Next() {
		var inst models.Institution
		if err := rows.Scan(
			&inst.ID, &inst.Name, &inst.RegistrationNo, &inst.Type, &inst.Email, &inst.Phone,
			&inst.Address, &inst.ContactPerson, &inst.Status, &inst.CreatedAt, &inst.UpdatedAt,
		); err != nil {
			return nil, err
		}
		institutions = append(institutions, &inst)
	}

	return institutions, rows.Err()
}

func (r *InstitutionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) error {
	query := squirrel.Update("institutions").
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
