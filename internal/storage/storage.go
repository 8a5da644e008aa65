// Package storage is the file storage collaborator: it receives file bytes
// only after upload validation passes and returns a public URL. Failures are
// surfaced to callers, which route them into the notification feed as
// retryable upload-failed events.
package storage

import (
	"context"
	"io"
)

type Store interface {
	Upload(ctx context.Context, key, contentType string, r io.Reader) (publicURL string, err error)
}
