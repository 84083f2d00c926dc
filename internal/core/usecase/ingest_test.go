package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/kirillkom/ats-resume-analyzer/internal/core/domain"
)

type repoFake struct {
	created    []*domain.Resume
	createErr  error
	getResume  *domain.Resume
	getErr     error
	statuses   []domain.ResumeStatus
	statusMsgs []string
	statusErr  error
	saved      *domain.AnalysisResult
	saveErr    error
}

func (f *repoFake) Create(_ context.Context, resume *domain.Resume) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, resume)
	return nil
}

func (f *repoFake) GetByID(_ context.Context, _ string) (*domain.Resume, error) {
	return f.getResume, f.getErr
}

func (f *repoFake) ListByUser(_ context.Context, _ string, _ int) ([]domain.Resume, error) {
	return nil, nil
}

func (f *repoFake) UpdateStatus(_ context.Context, _ string, status domain.ResumeStatus, errMessage string) error {
	if f.statusErr != nil {
		return f.statusErr
	}
	f.statuses = append(f.statuses, status)
	f.statusMsgs = append(f.statusMsgs, errMessage)
	return nil
}

func (f *repoFake) SaveAnalysis(_ context.Context, _ string, result *domain.AnalysisResult) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = result
	return nil
}

type storageFake struct {
	savedKeys []string
	savedData map[string][]byte
	saveErr   error
	openErr   error
}

func newStorageFake() *storageFake {
	return &storageFake{savedData: make(map[string][]byte)}
}

func (f *storageFake) Save(_ context.Context, key string, data io.Reader) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	f.savedKeys = append(f.savedKeys, key)
	f.savedData[key] = raw
	return nil
}

func (f *storageFake) Open(_ context.Context, key string) (io.ReadCloser, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	raw, ok := f.savedData[key]
	if !ok {
		return nil, errors.New("missing key " + key)
	}
	return io.NopCloser(bytes.NewReader(raw)), nil
}

type queueFake struct {
	published  []string
	publishErr error
}

func (f *queueFake) PublishResumeUploaded(_ context.Context, resumeID string) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, resumeID)
	return nil
}

func (f *queueFake) SubscribeResumeUploaded(context.Context, func(context.Context, string) error) error {
	return nil
}

func TestUploadStoresPersistsAndPublishes(t *testing.T) {
	repo := &repoFake{}
	storage := newStorageFake()
	queue := &queueFake{}
	uc := NewIngestResumeUseCase(repo, storage, queue, &analyzerFake{})

	resume, err := uc.Upload(context.Background(), "u-1", "My Resume.pdf", strings.NewReader("%PDF-1.4"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	if resume.ID == "" {
		t.Fatalf("expected generated resume id")
	}
	if resume.UserID != "u-1" || resume.Filename != "My Resume.pdf" {
		t.Fatalf("unexpected record %+v", resume)
	}
	if resume.Status != domain.StatusUploaded {
		t.Fatalf("status = %s, want %s", resume.Status, domain.StatusUploaded)
	}
	if !strings.HasPrefix(resume.StorageKey, resume.ID+"_") {
		t.Fatalf("storage key %q not prefixed with resume id", resume.StorageKey)
	}
	if !strings.HasSuffix(resume.StorageKey, "My_Resume.pdf") {
		t.Fatalf("storage key %q not built from the sanitized filename", resume.StorageKey)
	}

	if len(repo.created) != 1 {
		t.Fatalf("repo.Create called %d times, want 1", len(repo.created))
	}
	if len(storage.savedKeys) != 1 || storage.savedKeys[0] != resume.StorageKey {
		t.Fatalf("storage keys = %v, want [%s]", storage.savedKeys, resume.StorageKey)
	}
	if len(queue.published) != 1 || queue.published[0] != resume.ID {
		t.Fatalf("published = %v, want [%s]", queue.published, resume.ID)
	}
}

func TestUploadStorageFailureSkipsPersistence(t *testing.T) {
	repo := &repoFake{}
	storage := newStorageFake()
	storage.saveErr = errors.New("disk full")
	uc := NewIngestResumeUseCase(repo, storage, &queueFake{}, &analyzerFake{})

	if _, err := uc.Upload(context.Background(), "u-1", "r.pdf", strings.NewReader("x")); err == nil {
		t.Fatalf("expected error from storage failure")
	}
	if len(repo.created) != 0 {
		t.Fatalf("record must not be created when the binary was not stored")
	}
}

func TestUploadPublishFailurePropagates(t *testing.T) {
	queue := &queueFake{publishErr: errors.New("nats down")}
	uc := NewIngestResumeUseCase(&repoFake{}, newStorageFake(), queue, &analyzerFake{})

	if _, err := uc.Upload(context.Background(), "u-1", "r.pdf", strings.NewReader("x")); err == nil {
		t.Fatalf("expected error from publish failure")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"resume.pdf", "resume.pdf"},
		{"My Resume (final).pdf", "My_Resume__final_.pdf"},
		{"../../etc/passwd", "passwd"},
		{"", "resume.bin"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Fatalf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUploadAnalyzedPersistsReadyRecord(t *testing.T) {
	repo := &repoFake{}
	storage := newStorageFake()
	queue := &queueFake{}
	analyzer := &analyzerFake{result: &domain.AnalysisResult{ATSScore: 25.0}}
	uc := NewIngestResumeUseCase(repo, storage, queue, analyzer)

	resume, err := uc.UploadAnalyzed(context.Background(), "u-1", "resume.pdf", []byte("%PDF-1.4"), "python role")
	if err != nil {
		t.Fatalf("UploadAnalyzed() error = %v", err)
	}

	if resume.Status != domain.StatusReady {
		t.Fatalf("status = %s, want %s", resume.Status, domain.StatusReady)
	}
	if resume.Analysis == nil || resume.Analysis.ATSScore != 25.0 {
		t.Fatalf("analysis missing on record: %+v", resume.Analysis)
	}
	if len(repo.created) != 1 {
		t.Fatalf("repo.Create called %d times, want 1", len(repo.created))
	}
	if repo.saved == nil || repo.saved.ATSScore != 25.0 {
		t.Fatalf("analysis was not saved: %+v", repo.saved)
	}
	if len(queue.published) != 0 {
		t.Fatalf("synchronous path must not publish, got %v", queue.published)
	}
	if string(analyzer.received) != "%PDF-1.4" {
		t.Fatalf("analyzer received %q", analyzer.received)
	}
}

func TestUploadAnalyzedFailedAnalysisCreatesNoRecord(t *testing.T) {
	repo := &repoFake{}
	analyzer := &analyzerFake{err: domain.WrapError(domain.ErrUnsupportedFormat, "extract", errors.New("ext=.txt"))}
	uc := NewIngestResumeUseCase(repo, newStorageFake(), &queueFake{}, analyzer)

	_, err := uc.UploadAnalyzed(context.Background(), "u-1", "resume.txt", []byte("plain"), "")
	if !domain.IsKind(err, domain.ErrUnsupportedFormat) {
		t.Fatalf("error = %v, want ErrUnsupportedFormat", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("no record must be created for a failed analysis")
	}
}
