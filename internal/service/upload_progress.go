package service

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// UploadPhase is the strictly ordered per-file upload state. A file moves
// validating -> uploading -> completed or error; phases never interleave for
// the same file, though many files may be in flight at once.
type UploadPhase string

const (
	PhaseValidating UploadPhase = "validating"
	PhaseUploading  UploadPhase = "uploading"
	PhaseCompleted  UploadPhase = "completed"
	PhaseError      UploadPhase = "error"
)

var ErrProgressNotFound = errors.New("upload progress not found")

// UploadProgress is the observable state of one in-flight upload, tracked
// independently by its generated id.
type UploadProgress struct {
	ID        uuid.UUID
	FileName  string
	Phase     UploadPhase
	Error     string
	UpdatedAt time.Time
}

type progressTracker struct {
	mu      sync.Mutex
	entries map[uuid.UUID]UploadProgress
}

func newProgressTracker() *progressTracker {
	return &progressTracker{entries: make(map[uuid.UUID]UploadProgress)}
}

func (t *progressTracker) begin(fileName string) uuid.UUID {
	id := uuid.New()
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[id] = UploadProgress{
		ID:        id,
		FileName:  fileName,
		Phase:     PhaseValidating,
		UpdatedAt: time.Now(),
	}
	return id
}

func (t *progressTracker) advance(id uuid.UUID, phase UploadPhase, errMsg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	entry, ok := t.entries[id]
	if !ok {
		return
	}
	entry.Phase = phase
	entry.Error = errMsg
	entry.UpdatedAt = time.Now()
	t.entries[id] = entry
}

func (t *progressTracker) get(id uuid.UUID) (UploadProgress, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	entry, ok := t.entries[id]
	if !ok {
		return UploadProgress{}, ErrProgressNotFound
	}
	return entry, nil
}
