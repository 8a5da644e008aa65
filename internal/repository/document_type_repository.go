package repository

import (
	"context"

	"github.com/rickd091/mti-portal/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var documentTypeColumns = []string{"id", "key", "label", "category", "required", "created_at"}

type DocumentTypeRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewDocumentTypeRepository(db *pgxpool.Pool, logger *zap.Logger) *DocumentTypeRepository {
	return &DocumentTypeRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert inserts a catalog entry, leaving an existing row with the same key
// untouched so re-running the seed is safe.
func (r *DocumentTypeRepository) Upsert(ctx context.Context, dt *models.DocumentType) error {
	query := squirrel.Insert("document_types").
		Columns(documentTypeColumns...).
		Values(dt.ID, dt.Key, dt.Label, dt.Category, dt.Required, dt.CreatedAt).
		Suffix("ON CONFLICT (key) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *DocumentTypeRepository) List(ctx context.Context) ([]*models.DocumentType, error) {
	return r.listWhere(ctx, nil)
}

func (r *DocumentTypeRepository) ListRequired(ctx context.Context) ([]*models.DocumentType, error) {
	return r.listWhere(ctx, squirrel.Eq{"required": true})
}

func (r *DocumentTypeRepository) listWhere(ctx context.Context, cond squirrel.Eq) ([]*models.DocumentType, error) {
	query := squirrel.Select(documentTypeColumns...).
		From("document_types").
		OrderBy("key").
		PlaceholderFormat(squirrel.Dollar)
	if cond != nil {
		query = query.Where(cond)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []*models.DocumentType
	for rows.Next() {
		var dt models.DocumentType
		if err := rows.Scan(&dt.ID, &dt.Key, &dt.Label, &dt.Category, &dt.Required, &dt.CreatedAt); err != nil {
			return nil, err
		}
		types = append(types, &dt)
	}

	return types, rows.Err()
}
