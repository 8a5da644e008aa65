package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestProgressTrackerLifecycle(t *testing.T) {
	tracker := newProgressTracker()

	id := tracker.begin("syllabus.pdf")
	entry, err := tracker.get(id)
	if err != nil {
		t.Fatalf("get after begin: %v", err)
	}
	if entry.Phase != PhaseValidating {
		t.Fatalf("expected phase %q, got %q", PhaseValidating, entry.Phase)
	}
	if entry.FileName != "syllabus.pdf" {
		t.Fatalf("expected file name to be kept, got %q", entry.FileName)
	}

	tracker.advance(id, PhaseUploading, "")
	entry, _ = tracker.get(id)
	if entry.Phase != PhaseUploading {
		t.Fatalf("expected phase %q, got %q", PhaseUploading, entry.Phase)
	}

	tracker.advance(id, PhaseError, "connection reset")
	entry, _ = tracker.get(id)
	if entry.Phase != PhaseError {
		t.Fatalf("expected phase %q, got %q", PhaseError, entry.Phase)
	}
	if entry.Error != "connection reset" {
		t.Fatalf("expected error message to be kept, got %q", entry.Error)
	}
}

func TestProgressTrackerUnknownID(t *testing.T) {
	tracker := newProgressTracker()

	if _, err := tracker.get(uuid.New()); !errors.Is(err, ErrProgressNotFound) {
		t.Fatalf("expected ErrProgressNotFound, got %v", err)
	}

	// Advancing an unknown id must not create a phantom entry.
	id := uuid.New()
	tracker.advance(id, PhaseCompleted, "")
	if _, err := tracker.get(id); !errors.Is(err, ErrProgressNotFound) {
		t.Fatalf("expected ErrProgressNotFound after blind advance, got %v", err)
	}
}

func TestProgressTrackerIndependentFiles(t *testing.T) {
	tracker := newProgressTracker()

	first := tracker.begin("a.pdf")
	second := tracker.begin("b.pdf")

	tracker.advance(first, PhaseCompleted, "")

	entry, _ := tracker.get(second)
	if entry.Phase != PhaseValidating {
		t.Fatalf("advancing one file must not touch another, got %q", entry.Phase)
	}
}
