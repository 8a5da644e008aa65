package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rickd091/mti-portal/internal/dto"
	"github.com/rickd091/mti-portal/internal/lifecycle"
	"github.com/rickd091/mti-portal/internal/models"
	"github.com/rickd091/mti-portal/internal/repository"
	"github.com/rickd091/mti-portal/internal/storage"
	"github.com/rickd091/mti-portal/pkg/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrInvalidCategory  = errors.New("invalid document category")
)

// UploadInput is one candidate file in an upload batch.
type UploadInput struct {
	Key        string
	Name       string
	Category   models.DocumentCategory
	MimeType   string
	SizeBytes  int64
	ExpiryDate *time.Time
	Content    io.Reader
	User       string
}

// DocumentService orchestrates the document lifecycle engine against the
// persistence and file storage collaborators. It owns one lifecycle session
// per institution application; sessions are created lazily, hydrated from
// Postgres, and closed together on shutdown.
type DocumentService struct {
	docRepo *repository.DocumentRepository
	files   storage.Store
	cfg     config.LifecycleConfig
	clock   lifecycle.Clock
	logger  *zap.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*lifecycle.Session
	progress *progressTracker
}

func NewDocumentService(
	docRepo *repository.DocumentRepository,
	files storage.Store,
	cfg config.LifecycleConfig,
	clock lifecycle.Clock,
	logger *zap.Logger,
) *DocumentService {
	if clock == nil {
		clock = lifecycle.SystemClock()
	}
	return &DocumentService{
		docRepo:  docRepo,
		files:    files,
		cfg:      cfg,
		clock:    clock,
		logger:   logger,
		sessions: make(map[uuid.UUID]*lifecycle.Session),
		progress: newProgressTracker(),
	}
}

// session returns the lifecycle session for an institution, creating and
// hydrating it on first use.
func (s *DocumentService) session(ctx context.Context, institutionID uuid.UUID) (*lifecycle.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[institutionID]; ok {
		return sess, nil
	}

	sess, err := lifecycle.NewSession(lifecycle.SessionConfig{
		WarningThresholdDays: s.cfg.WarningThresholdDays,
		StrictTransitions:    s.cfg.StrictTransitions,
		ReclassifyInterval:   s.cfg.ReclassifyInterval,
		AutoHideDuration:     s.cfg.AutoHideDuration,
		MaxRetained:          s.cfg.MaxRetainedNotifications,
		Clock:                s.clock,
	}, s.logger)
	if err != nil {
		return nil, err
	}

	docs, err := s.docRepo.ListByInstitution(ctx, institutionID)
	if err != nil {
		sess.Close()
		return nil, fmt.Errorf("failed to hydrate session: %w", err)
	}
	for _, doc := range docs {
		if err := sess.Store().Restore(*doc); err != nil {
			s.logger.Warn("Skipping document during session hydration",
				zap.String("key", doc.Key), zap.Error(err))
		}
	}

	s.sessions[institutionID] = sess
	return sess, nil
}

// CloseAll tears down every open session. Called once on shutdown.
func (s *DocumentService) CloseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		sess.Close()
		delete(s.sessions, id)
	}
}

// UploadBatch validates a batch and starts an asynchronous upload for every
// admitted file. Validation failure never mutates any store; all reasons are
// surfaced together as one error event, not one per file.
func (s *DocumentService) UploadBatch(ctx context.Context, institutionID uuid.UUID, inputs []UploadInput) (*dto.UploadBatchResponse, error) {
	sess, err := s.session(ctx, institutionID)
	if err != nil {
		return nil, err
	}

	metas := make([]lifecycle.FileMeta, len(inputs))
	for i, in := range inputs {
		metas[i] = lifecycle.FileMeta{
			Name:      sanitizeUTF8(in.Name),
			MimeType:  in.MimeType,
			SizeBytes: in.SizeBytes,
		}
	}

	verdict := lifecycle.ValidateBatch(metas, lifecycle.UploadConstraints{
		MaxSizeBytes:     s.cfg.MaxUploadSizeBytes,
		MaxFileCount:     s.cfg.MaxFileCount,
		AllowedMimeTypes: s.cfg.AllowedMimeTypes,
	})

	resp := &dto.UploadBatchResponse{Reasons: verdict.Reasons}

	if len(verdict.Reasons) > 0 {
		sess.Feed().Push(lifecycle.Event{
			Severity: lifecycle.SeverityError,
			Message:  strings.Join(verdict.Reasons, "; "),
			GroupKey: "upload",
		})
	}

	// Batch-level rejection admits nothing.
	if len(verdict.Files) == 0 {
		resp.Rejected = len(inputs)
		for _, in := range inputs {
			resp.Files = append(resp.Files, dto.UploadFileResult{FileName: in.Name, Accepted: false})
		}
		return resp, nil
	}

	for i, fr := range verdict.Files {
		if !fr.OK {
			resp.Rejected++
			resp.Files = append(resp.Files, dto.UploadFileResult{FileName: fr.File.Name, Accepted: false})
			continue
		}

		in := inputs[i]
		progressID := s.progress.begin(fr.File.Name)
		resp.Accepted++
		resp.Files = append(resp.Files, dto.UploadFileResult{
			ProgressID: progressID.String(),
			FileName:   fr.File.Name,
			Accepted:   true,
		})

		// Each file's upload is fire-and-forget; its own phases stay
		// strictly ordered under the progress id.
		content, readErr := io.ReadAll(in.Content)
		go s.uploadOne(institutionID, sess, in, content, readErr, progressID)
	}

	return resp, nil
}

func (s *DocumentService) uploadOne(institutionID uuid.UUID, sess *lifecycle.Session, in UploadInput, content []byte, readErr error, progressID uuid.UUID) {
	ctx := context.Background()

	fail := func(err error) {
		s.progress.advance(progressID, PhaseError, err.Error())
		sess.Feed().Push(lifecycle.Event{
			Severity:  lifecycle.SeverityError,
			Message:   fmt.Sprintf("Upload of %s failed: %v", in.Name, err),
			GroupKey:  "upload",
			Retryable: true,
		})
		s.logger.Error("Upload failed",
			zap.String("institution_id", institutionID.String()),
			zap.String("key", in.Key),
			zap.Error(err),
		)
	}

	if readErr != nil {
		fail(readErr)
		return
	}

	s.progress.advance(progressID, PhaseUploading, "")

	objectKey := uuid.New().String() + filepath.Ext(in.Name)
	fileURL, err := s.files.Upload(ctx, objectKey, in.MimeType, bytes.NewReader(content))
	if err != nil {
		// The document never enters the store on transport failure.
		fail(err)
		return
	}

	now := s.clock.Now()
	key := in.Key
	if key == "" {
		key = uuid.New().String()
	}

	if existing, getErr := sess.Store().Get(key); getErr == nil {
		// Re-upload of a known document: the fresh expiry date is what
		// cures an expired classification.
		if err := sess.Store().Reupload(key, in.MimeType, in.SizeBytes, fileURL, in.ExpiryDate, in.User); err != nil {
			fail(err)
			return
		}
		updated, _ := sess.Store().Get(key)
		updated.ID = existing.ID
		updated.InstitutionID = institutionID
		if err := s.docRepo.Update(ctx, &updated); err != nil {
			s.logger.Error("Failed to persist reupload", zap.String("key", key), zap.Error(err))
		}
	} else {
		doc := models.DocumentRecord{
			ID:            uuid.New(),
			InstitutionID: institutionID,
			Key:           key,
			Name:          sanitizeUTF8(in.Name),
			Category:      in.Category,
			MimeType:      in.MimeType,
			SizeBytes:     in.SizeBytes,
			FileURL:       fileURL,
			UploadDate:    now,
			ExpiryDate:    in.ExpiryDate,
			WorkflowState: models.WorkflowSubmitted,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := sess.Store().Insert(doc, in.User); err != nil {
			fail(err)
			return
		}
		stored, _ := sess.Store().Get(key)
		stored.ID = doc.ID
		stored.InstitutionID = institutionID
		if err := s.docRepo.Create(ctx, &stored); err != nil {
			s.logger.Error("Failed to persist document", zap.String("key", key), zap.Error(err))
		}
	}

	sess.Reclassify()
	s.progress.advance(progressID, PhaseCompleted, "")

	if s.cfg.NotifyOnSuccess {
		sess.Feed().Push(lifecycle.Event{
			Severity: lifecycle.SeveritySuccess,
			Message:  fmt.Sprintf("%s uploaded", in.Name),
			GroupKey: "upload",
		})
	}
}

// Progress reports the state of one in-flight upload.
func (s *DocumentService) Progress(id uuid.UUID) (*dto.UploadProgressResponse, error) {
	p, err := s.progress.get(id)
	if err != nil {
		return nil, err
	}
	return &dto.UploadProgressResponse{
		ID:        p.ID.String(),
		FileName:  p.FileName,
		Phase:     string(p.Phase),
		Error:     p.Error,
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}, nil
}

// ListDocuments returns the institution's documents with freshly derived
// classifications.
func (s *DocumentService) ListDocuments(ctx context.Context, institutionID uuid.UUID) ([]*dto.DocumentResponse, error) {
	sess, err := s.session(ctx, institutionID)
	if err != nil {
		return nil, err
	}

	docs := sess.Store().List()
	responses := make([]*dto.DocumentResponse, len(docs))
	for i := range docs {
		responses[i] = s.toDocumentResponse(&docs[i], false)
	}
	return responses, nil
}

// GetDocument returns one document with its full history.
func (s *DocumentService) GetDocument(ctx context.Context, institutionID uuid.UUID, key string) (*dto.DocumentResponse, error) {
	sess, err := s.session(ctx, institutionID)
	if err != nil {
		return nil, err
	}

	doc, err := sess.Store().Get(key)
	if err != nil {
		if errors.Is(err, lifecycle.ErrNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return s.toDocumentResponse(&doc, true), nil
}

// Transition moves a document through its workflow and persists the result.
func (s *DocumentService) Transition(ctx context.Context, institutionID uuid.UUID, key string, state models.WorkflowState, user string) (*dto.DocumentResponse, error) {
	sess, err := s.session(ctx, institutionID)
	if err != nil {
		return nil, err
	}

	if err := sess.Store().Transition(key, state, user); err != nil {
		if errors.Is(err, lifecycle.ErrNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	sess.Reclassify()

	doc, err := sess.Store().Get(key)
	if err != nil {
		return nil, err
	}
	doc.InstitutionID = institutionID
	if err := s.docRepo.Update(ctx, &doc); err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.logger.Error("Failed to persist transition", zap.String("key", key), zap.Error(err))
	}

	return s.toDocumentResponse(&doc, true), nil
}

// RequestRenewal flags a document for re-issuance. A failed request surfaces
// the error both to the caller and to the feed; a repeat request refreshes
// the timestamp without emitting a duplicate notification.
func (s *DocumentService) RequestRenewal(ctx context.Context, institutionID uuid.UUID, key, user string) (*dto.DocumentResponse, error) {
	sess, err := s.session(ctx, institutionID)
	if err != nil {
		return nil, err
	}

	repeat, err := sess.Store().RequestRenewal(key, user)
	if err != nil {
		if errors.Is(err, lifecycle.ErrNotFound) {
			sess.Feed().Push(lifecycle.Event{
				Severity: lifecycle.SeverityError,
				Message:  fmt.Sprintf("Renewal request failed: document %s not found", key),
				GroupKey: "renewal",
			})
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}

	doc, err := sess.Store().Get(key)
	if err != nil {
		return nil, err
	}
	doc.InstitutionID = institutionID
	if err := s.docRepo.Update(ctx, &doc); err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.logger.Error("Failed to persist renewal request", zap.String("key", key), zap.Error(err))
	}

	if !repeat && s.cfg.NotifyOnSuccess {
		sess.Feed().Push(lifecycle.Event{
			Severity: lifecycle.SeveritySuccess,
			Message:  fmt.Sprintf("Renewal requested for %s", doc.Name),
			GroupKey: "renewal",
		})
	}

	return s.toDocumentResponse(&doc, true), nil
}

// Notifications derives the notification list for an institution.
func (s *DocumentService) Notifications(ctx context.Context, institutionID uuid.UUID, showAll bool) ([]*dto.NotificationResponse, error) {
	sess, err := s.session(ctx, institutionID)
	if err != nil {
		return nil, err
	}

	entries := sess.Notifications(showAll)
	responses := make([]*dto.NotificationResponse, len(entries))
	for i, e := range entries {
		responses[i] = &dto.NotificationResponse{
			ID:              e.ID,
			DocumentName:    e.DocumentName,
			Category:        string(e.Category),
			Status:          string(e.Status),
			DaysUntilExpiry: e.DaysUntilExpiry,
			RequiresAction:  e.RequiresAction,
		}
	}
	return responses, nil
}

// Summary rolls up the institution's classified documents.
func (s *DocumentService) Summary(ctx context.Context, institutionID uuid.UUID) (*dto.SummaryResponse, error) {
	sess, err := s.session(ctx, institutionID)
	if err != nil {
		return nil, err
	}

	summary := sess.Summary()
	byStatus := make(map[string]int, len(summary.ByStatus))
	for status, count := range summary.ByStatus {
		byStatus[string(status)] = count
	}
	return &dto.SummaryResponse{
		Total:          summary.Total,
		RequiresAction: summary.RequiresAction,
		ByStatus:       byStatus,
	}, nil
}

// Events returns the active transient events, flat or grouped.
func (s *DocumentService) Events(ctx context.Context, institutionID uuid.UUID, grouped bool) (any, error) {
	sess, err := s.session(ctx, institutionID)
	if err != nil {
		return nil, err
	}

	if grouped {
		buckets := sess.Feed().Grouped()
		out := make(map[string][]*dto.EventResponse, len(buckets))
		for key, events := range buckets {
			for _, e := range events {
				out[key] = append(out[key], toEventResponse(e))
			}
		}
		return out, nil
	}

	events := sess.Feed().Active()
	out := make([]*dto.EventResponse, len(events))
	for i, e := range events {
		out[i] = toEventResponse(e)
	}
	return out, nil
}

func toEventResponse(e lifecycle.Event) *dto.EventResponse {
	return &dto.EventResponse{
		ID:         e.ID.String(),
		Severity:   string(e.Severity),
		Message:    e.Message,
		GroupKey:   e.GroupKey,
		Persistent: e.Persistent,
		Retryable:  e.Retryable,
		CreatedAt:  e.CreatedAt.Format(time.RFC3339),
	}
}

func (s *DocumentService) toDocumentResponse(doc *models.DocumentRecord, withHistory bool) *dto.DocumentResponse {
	resp := &dto.DocumentResponse{
		ID:               doc.ID.String(),
		Key:              doc.Key,
		Name:             doc.Name,
		Category:         string(doc.Category),
		MimeType:         doc.MimeType,
		SizeBytes:        doc.SizeBytes,
		FileURL:          doc.FileURL,
		UploadDate:       doc.UploadDate.Format(time.RFC3339),
		WorkflowState:    string(doc.WorkflowState),
		Status:           string(doc.Status),
		RenewalRequested: doc.RenewalRequested,
	}
	if doc.ExpiryDate != nil {
		resp.ExpiryDate = doc.ExpiryDate.Format(time.RFC3339)
		days := lifecycle.DaysUntilExpiry(*doc.ExpiryDate, s.clock.Now())
		resp.DaysUntilExpiry = &days
	}
	if doc.RenewalRequestDate != nil {
		resp.RenewalRequestDate = doc.RenewalRequestDate.Format(time.RFC3339)
	}
	if withHistory {
		resp.History = make([]dto.HistoryEntryResponse, len(doc.History))
		for i, h := range doc.History {
			resp.History[i] = dto.HistoryEntryResponse{
				State:     h.State,
				Timestamp: h.Timestamp.Format(time.RFC3339),
				User:      h.User,
			}
		}
	}
	return resp
}
