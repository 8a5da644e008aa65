package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rickd091/mti-portal/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var documentColumns = []string{
	"id", "institution_id", "doc_key", "name", "category", "mime_type",
	"size_bytes", "file_url", "upload_date", "expiry_date", "workflow_state",
	"renewal_requested", "renewal_request_date", "history", "created_at", "updated_at",
}

type DocumentRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewDocumentRepository(db *pgxpool.Pool, logger *zap.Logger) *DocumentRepository {
	return &DocumentRepository{
		db:     db,
		logger: logger,
	}
}

func (r *DocumentRepository) Create(ctx context.Context, doc *models.DocumentRecord) error {
	history, err := json.Marshal(doc.History)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	query := squirrel.Insert("documents").
		Columns(documentColumns...).
		Values(doc.ID, doc.InstitutionID, doc.Key, doc.Name, doc.Category, doc.MimeType,
			doc.SizeBytes, doc.FileURL, doc.UploadDate, doc.ExpiryDate, doc.WorkflowState,
			doc.RenewalRequested, doc.RenewalRequestDate, history, doc.CreatedAt, doc.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *DocumentRepository) GetByKey(ctx context.Context, institutionID uuid.UUID, key string) (*models.DocumentRecord, error) {
	query := squirrel.Select(documentColumns...).
		From("documents").
		Where(squirrel.Eq{"institution_id": institutionID, "doc_key": key}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	doc, err := r.scanDocument(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (r *DocumentRepository) ListByInstitution(ctx context.Context, institutionID uuid.UUID) ([]*models.DocumentRecord, error) {
	query := squirrel.Select(documentColumns...).
		From("documents").
		Where(squirrel.Eq{"institution_id": institutionID}).
		OrderBy("created_at ASC").
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

	var documents []*models.DocumentRecord
	for rows.Next() {
		doc, err := r.scanDocument(rows)
		if err != nil {
			return nil, err
		}
		documents = append(documents, doc)
	}

	return documents, rows.Err()
}

// Update persists the mutable lifecycle fields of a document. Returns
// ErrNotFound when the id does not exist.
func (r *DocumentRepository) Update(ctx context.Context, doc *models.DocumentRecord) error {
	history, err := json.Marshal(doc.History)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	query := squirrel.Update("documents").
		Set("mime_type", doc.MimeType).
		Set("size_bytes", doc.SizeBytes).
		Set("file_url", doc.FileURL).
		Set("upload_date", doc.UploadDate).
		Set("expiry_date", doc.ExpiryDate).
		Set("workflow_state", doc.WorkflowState).
		Set("renewal_requested", doc.RenewalRequested).
		Set("renewal_request_date", doc.RenewalRequestDate).
		Set("history", history).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": doc.ID}).
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

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *DocumentRepository) scanDocument(row rowScanner) (*models.DocumentRecord, error) {
	var doc models.DocumentRecord
	var history []byte
	err := row.Scan(
		&doc.ID, &doc.InstitutionID, &doc.Key, &doc.Name, &doc.Category, &doc.MimeType,
		&doc.SizeBytes, &doc.FileURL, &doc.UploadDate, &doc.ExpiryDate, &doc.WorkflowState,
		&doc.RenewalRequested, &doc.RenewalRequestDate, &history, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(history) > 0 {
		if err := json.Unmarshal(history, &doc.History); err != nil {
			return nil, fmt.Errorf("failed to decode history: %w", err)
		}
	}
	return &doc, nil
}
