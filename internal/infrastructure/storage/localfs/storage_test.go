package localfs

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestSaveAndOpenRoundTrip(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx := context.Background()

	if err := s.Save(ctx, "r-1_resume.pdf", strings.NewReader("%PDF-1.4 body")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reader, err := s.Open(ctx, "r-1_resume.pdf")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(raw) != "%PDF-1.4 body" {
		t.Fatalf("stored content = %q", raw)
	}
}

func TestOpenMissingKey(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := s.Open(context.Background(), "missing"); err == nil {
		t.Fatalf("expected error for missing key")
	}
}
