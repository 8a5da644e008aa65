package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestLocalStoreUpload(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("new local store: %v", err)
	}

	url, err := store.Upload(context.Background(), "abc123.pdf", "application/pdf", strings.NewReader("content"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if url != "/uploads/abc123.pdf" {
		t.Fatalf("unexpected url %s", url)
	}

	data, err := os.ReadFile(filepath.Join(dir, "abc123.pdf"))
	if err != nil || string(data) != "content" {
		t.Fatalf("stored file mismatch: %s err=%v", data, err)
	}
}

func TestLocalStoreStripsPathComponents(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("new local store: %v", err)
	}

	url, err := store.Upload(context.Background(), "../escape.pdf", "application/pdf", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if url != "/uploads/escape.pdf" {
		t.Fatalf("unexpected url %s", url)
	}
	if _, err := os.Stat(filepath.Join(dir, "escape.pdf")); err != nil {
		t.Fatalf("file not stored inside the upload dir: %v", err)
	}
}
