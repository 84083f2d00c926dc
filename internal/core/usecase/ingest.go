package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kirillkom/ats-resume-analyzer/internal/core/domain"
	"github.com/kirillkom/ats-resume-analyzer/internal/core/ports"
)

type IngestResumeUseCase struct {
	repo     ports.ResumeRepository
	storage  ports.ObjectStorage
	queue    ports.MessageQueue
	analyzer ports.ResumeAnalyzer
}

func NewIngestResumeUseCase(
	repo ports.ResumeRepository,
	storage ports.ObjectStorage,
	queue ports.MessageQueue,
	analyzer ports.ResumeAnalyzer,
) *IngestResumeUseCase {
	return &IngestResumeUseCase{
		repo:     repo,
		storage:  storage,
		queue:    queue,
		analyzer: analyzer,
	}
}

func (uc *IngestResumeUseCase) Upload(
	ctx context.Context,
	userID, filename string,
	body io.Reader,
) (*domain.Resume, error) {
	id := uuid.NewString()
	storageKey := fmt.Sprintf("%s_%s", id, sanitizeFilename(filename))
	now := time.Now().UTC()

	if err := uc.storage.Save(ctx, storageKey, body); err != nil {
		return nil, fmt.Errorf("save to object storage: %w", err)
	}

	resume := &domain.Resume{
		ID:         id,
		UserID:     userID,
		Filename:   filename,
		StorageKey: storageKey,
		Status:     domain.StatusUploaded,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := uc.repo.Create(ctx, resume); err != nil {
		return nil, fmt.Errorf("create resume record: %w", err)
	}

	if err := uc.queue.PublishResumeUploaded(ctx, resume.ID); err != nil {
		return nil, fmt.Errorf("publish upload event: %w", err)
	}

	return resume, nil
}

// UploadAnalyzed is the synchronous path: the document is analyzed
// inline and the record lands already ready, with no queue round-trip.
// A failed analysis creates no record at all; the caller gets the
// pipeline error directly.
func (uc *IngestResumeUseCase) UploadAnalyzed(
	ctx context.Context,
	userID, filename string,
	content []byte,
	jobDescription string,
) (*domain.Resume, error) {
	result, err := uc.analyzer.Analyze(ctx, content, filename, jobDescription)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	storageKey := fmt.Sprintf("%s_%s", id, sanitizeFilename(filename))
	now := time.Now().UTC()

	if err := uc.storage.Save(ctx, storageKey, bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("save to object storage: %w", err)
	}

	resume := &domain.Resume{
		ID:         id,
		UserID:     userID,
		Filename:   filename,
		StorageKey: storageKey,
		Status:     domain.StatusReady,
		Analysis:   result,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := uc.repo.Create(ctx, resume); err != nil {
		return nil, fmt.Errorf("create resume record: %w", err)
	}
	// Create persists the base record; the analysis column is written
	// by the same statement the worker uses.
	if err := uc.repo.SaveAnalysis(ctx, id, result); err != nil {
		return nil, fmt.Errorf("save analysis: %w", err)
	}

	return resume, nil
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" || base == "." || base == ".." {
		return "resume.bin"
	}
	return base
}
