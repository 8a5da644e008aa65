package lifecycle

import (
	"fmt"
	"strings"
)

// UploadConstraints are the caller-supplied limits for an upload batch.
type UploadConstraints struct {
	MaxSizeBytes     int64
	MaxFileCount     int
	AllowedMimeTypes []string
}

// FileMeta describes one candidate file before it enters the store.
type FileMeta struct {
	Name      string
	MimeType  string
	SizeBytes int64
}

// FileResult is the per-file verdict within a batch.
type FileResult struct {
	File    FileMeta
	OK      bool
	Reasons []string
}

// BatchResult is the verdict for a whole upload attempt. Reasons accumulates
// every rejection reason across the batch so the caller can surface them as a
// single error event rather than one per file.
type BatchResult struct {
	OK      bool
	Reasons []string
	Files   []FileResult
}

// Admitted returns the files that passed validation, in input order.
func (r BatchResult) Admitted() []FileMeta {
	var out []FileMeta
	for _, f := range r.Files {
		if f.OK {
			out = append(out, f.File)
		}
	}
	return out
}

// ValidateBatch is a pure gate with no side effects; failure here never
// mutates the document store.
//
// The batch-size check runs before any per-file check: a batch over the file
// count limit is rejected wholesale with a single reason and zero files
// validated, not trimmed to fit. Otherwise each file is checked for size and
// MIME type independently, so one bad file does not reject its siblings.
func ValidateBatch(files []FileMeta, c UploadConstraints) BatchResult {
	if c.MaxFileCount > 0 && len(files) > c.MaxFileCount {
		return BatchResult{
			Reasons: []string{fmt.Sprintf("Maximum %d files allowed", c.MaxFileCount)},
		}
	}

	result := BatchResult{OK: true}
	for _, f := range files {
		fr := FileResult{File: f, OK: true}
		if c.MaxSizeBytes > 0 && f.SizeBytes > c.MaxSizeBytes {
			fr.OK = false
			fr.Reasons = append(fr.Reasons, fmt.Sprintf(
				"%s exceeds the %dMB size limit", f.Name, c.MaxSizeBytes/(1024*1024)))
		}
		if len(c.AllowedMimeTypes) > 0 && !mimeAllowed(f.MimeType, c.AllowedMimeTypes) {
			fr.OK = false
			fr.Reasons = append(fr.Reasons, fmt.Sprintf(
				"%s: type %s is not allowed (allowed: %s)",
				f.Name, f.MimeType, strings.Join(c.AllowedMimeTypes, ", ")))
		}
		if !fr.OK {
			result.OK = false
			result.Reasons = append(result.Reasons, fr.Reasons...)
		}
		result.Files = append(result.Files, fr)
	}
	return result
}

func mimeAllowed(mimeType string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(strings.TrimSpace(mimeType), a) {
			return true
		}
	}
	return false
}
