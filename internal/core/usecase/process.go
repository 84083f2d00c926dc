package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/kirillkom/ats-resume-analyzer/internal/core/domain"
	"github.com/kirillkom/ats-resume-analyzer/internal/core/ports"
)

// ProcessResumeUseCase drives the asynchronous path: fetch the stored
// document, run the analysis pipeline and persist the outcome on the
// resume record.
type ProcessResumeUseCase struct {
	repo     ports.ResumeRepository
	storage  ports.ObjectStorage
	analyzer ports.ResumeAnalyzer
}

func NewProcessResumeUseCase(
	repo ports.ResumeRepository,
	storage ports.ObjectStorage,
	analyzer ports.ResumeAnalyzer,
) *ProcessResumeUseCase {
	return &ProcessResumeUseCase{
		repo:     repo,
		storage:  storage,
		analyzer: analyzer,
	}
}

func (uc *ProcessResumeUseCase) ProcessByID(ctx context.Context, resumeID string) error {
	if err := uc.markStatus(ctx, resumeID, domain.StatusProcessing, ""); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	result, err := uc.processPipeline(ctx, resumeID)
	if err != nil {
		if failErr := uc.markFailed(ctx, resumeID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.repo.SaveAnalysis(ctx, resumeID, result); err != nil {
		saveErr := fmt.Errorf("save analysis: %w", err)
		if failErr := uc.markFailed(ctx, resumeID, saveErr); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", saveErr, failErr)
		}
		return saveErr
	}

	if err := uc.markStatus(ctx, resumeID, domain.StatusReady, ""); err != nil {
		return fmt.Errorf("set status=ready: %w", err)
	}

	return nil
}

func (uc *ProcessResumeUseCase) processPipeline(ctx context.Context, resumeID string) (*domain.AnalysisResult, error) {
	resume, err := uc.repo.GetByID(ctx, resumeID)
	if err != nil {
		return nil, fmt.Errorf("fetch resume by id: %w", err)
	}

	content, err := uc.fetchContent(ctx, resume.StorageKey)
	if err != nil {
		return nil, err
	}

	result, err := uc.analyzer.Analyze(ctx, content, resume.Filename, "")
	if err != nil {
		return nil, fmt.Errorf("analyze resume: %w", err)
	}
	return result, nil
}

func (uc *ProcessResumeUseCase) fetchContent(ctx context.Context, storageKey string) ([]byte, error) {
	reader, err := uc.storage.Open(ctx, storageKey)
	if err != nil {
		return nil, fmt.Errorf("open stored resume: %w", err)
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read stored resume: %w", err)
	}
	return content, nil
}

func (uc *ProcessResumeUseCase) markStatus(ctx context.Context, resumeID string, status domain.ResumeStatus, errMessage string) error {
	return uc.repo.UpdateStatus(ctx, resumeID, status, errMessage)
}

func (uc *ProcessResumeUseCase) markFailed(ctx context.Context, resumeID string, processErr error) error {
	if processErr == nil {
		return nil
	}
	return uc.markStatus(ctx, resumeID, domain.StatusFailed, processErr.Error())
}
