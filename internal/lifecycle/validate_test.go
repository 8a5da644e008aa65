package lifecycle

import (
	"strings"
	"testing"
)

var testConstraints = UploadConstraints{
	MaxSizeBytes:     10 * 1024 * 1024,
	MaxFileCount:     10,
	AllowedMimeTypes: []string{"application/pdf", "image/jpeg", "image/png"},
}

func TestValidateBatchOverCountRejectedWholesale(t *testing.T) {
	files := make([]FileMeta, 11)
	for i := range files {
		files[i] = FileMeta{Name: "doc.pdf", MimeType: "application/pdf", SizeBytes: 100}
	}

	result := ValidateBatch(files, testConstraints)
	if result.OK {
		t.Fatalf("expected batch rejection")
	}
	if len(result.Reasons) != 1 || result.Reasons[0] != "Maximum 10 files allowed" {
		t.Fatalf("expected single count reason, got %v", result.Reasons)
	}
	if admitted := result.Admitted(); len(admitted) != 0 {
		t.Fatalf("expected zero admitted files, got %d", len(admitted))
	}
}

func TestValidateBatchOversizeFile(t *testing.T) {
	files := []FileMeta{
		{Name: "big.pdf", MimeType: "application/pdf", SizeBytes: testConstraints.MaxSizeBytes + 1},
	}

	result := ValidateBatch(files, testConstraints)
	if result.OK {
		t.Fatalf("expected rejection")
	}
	if len(result.Reasons) != 1 || !strings.Contains(result.Reasons[0], "10MB") {
		t.Fatalf("expected size reason naming the limit in MB, got %v", result.Reasons)
	}
	if len(result.Admitted()) != 0 {
		t.Fatalf("oversize file must not be admitted")
	}
}

func TestValidateBatchBadTypeDoesNotRejectSiblings(t *testing.T) {
	files := []FileMeta{
		{Name: "a.pdf", MimeType: "application/pdf", SizeBytes: 100},
		{Name: "b.exe", MimeType: "application/x-msdownload", SizeBytes: 100},
		{Name: "c.png", MimeType: "image/png", SizeBytes: 100},
	}

	result := ValidateBatch(files, testConstraints)
	if result.OK {
		t.Fatalf("expected batch to carry a rejection")
	}
	admitted := result.Admitted()
	if len(admitted) != 2 || admitted[0].Name != "a.pdf" || admitted[1].Name != "c.png" {
		t.Fatalf("expected siblings admitted, got %v", admitted)
	}
	if len(result.Reasons) != 1 || !strings.Contains(result.Reasons[0], "application/x-msdownload") {
		t.Fatalf("expected one type reason naming the rejected type, got %v", result.Reasons)
	}
	if !strings.Contains(result.Reasons[0], "application/pdf") {
		t.Fatalf("type reason should name the allowed set, got %v", result.Reasons)
	}
}

func TestValidateBatchMultipleReasonsAccumulate(t *testing.T) {
	files := []FileMeta{
		{Name: "bad.exe", MimeType: "application/x-msdownload", SizeBytes: testConstraints.MaxSizeBytes + 1},
	}

	result := ValidateBatch(files, testConstraints)
	if len(result.Reasons) != 2 {
		t.Fatalf("expected size and type reasons to accumulate, got %v", result.Reasons)
	}
	if len(result.Files) != 1 || result.Files[0].OK {
		t.Fatalf("file must carry its own failed verdict")
	}
}

func TestValidateBatchAllValid(t *testing.T) {
	files := []FileMeta{
		{Name: "a.pdf", MimeType: "application/pdf", SizeBytes: 100},
		{Name: "b.jpg", MimeType: "image/jpeg", SizeBytes: 200},
	}

	result := ValidateBatch(files, testConstraints)
	if !result.OK || len(result.Reasons) != 0 {
		t.Fatalf("expected clean batch, got %v", result.Reasons)
	}
	if len(result.Admitted()) != 2 {
		t.Fatalf("expected both files admitted")
	}
}
