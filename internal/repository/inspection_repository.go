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

var inspectionColumns = []string{
	"id", "institution_id", "scheduled_for", "inspector", "status",
	"findings", "outcome", "created_at", "updated_at",
}

type InspectionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewInspectionRepository(db *pgxpool.Pool, logger *zap.Logger) *InspectionRepository {
	return &InspectionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *InspectionRepository) Create(ctx context.Context, insp *models.Inspection) error {
	query := squirrel.Insert("inspections").
		Columns(inspectionColumns...).
		Values(insp.ID, insp.InstitutionID, insp.ScheduledFor, insp.Inspector, insp.Status,
			insp.Findings, insp.Outcome, insp.CreatedAt, insp.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *InspectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Inspection, error) {
	query := squirrel.Select(inspectionColumns...).
		From("inspections").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var insp models.Inspection
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&insp.ID, &insp.InstitutionID, &insp.ScheduledFor, &insp.Inspector, &insp.Status,
		&insp.Findings, &insp.Outcome, &insp.CreatedAt, &insp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &insp, nil
}

func (r *InspectionRepository) ListByInstitution(ctx context.Context, institutionID uuid.UUID) ([]*models.Inspection, error) {
	query := squirrel.Select(inspectionColumns...).
		From("inspections").
		Where(squirrel.Eq{"institution_id": institutionID}).
		OrderBy("scheduled_for ASC").
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

	var inspections []*models.Inspection
	for rows.Next() {
		var insp models.Inspection
		if err := rows.Scan(
			&insp.ID, &insp.InstitutionID, &insp.ScheduledFor, &insp.Inspector, &insp.Status,
			&insp.Findings, &insp.Outcome, &insp.CreatedAt, &insp.UpdatedAt,
		); err != nil {
			return nil, err
		}
		inspections = append(inspections, &insp)
	}

	return inspections, rows.Err()
}

func (r *InspectionRepository) Update(ctx context.Context, insp *models.Inspection) error {
	query := squirrel.Update("inspections").
		Set("scheduled_for", insp.ScheduledFor).
		Set("inspector", insp.Inspector).
		Set("status", insp.Status).
		Set("findings", insp.Findings).
		Set("outcome", insp.Outcome).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": insp.ID}).
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
