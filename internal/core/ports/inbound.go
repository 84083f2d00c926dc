package ports

import (
	"context"
	"io"

	"github.com/kirillkom/ats-resume-analyzer/internal/core/domain"
)

// ResumeIngestor is the inbound contract for resume upload
// orchestration. Upload defers analysis to the worker; UploadAnalyzed
// runs the pipeline inline and persists a ready record in one step.
type ResumeIngestor interface {
	Upload(ctx context.Context, userID, filename string, body io.Reader) (*domain.Resume, error)
	UploadAnalyzed(ctx context.Context, userID, filename string, content []byte, jobDescription string) (*domain.Resume, error)
}

// ResumeAnalyzer is the inbound contract for the synchronous analysis
// pipeline over raw document bytes.
type ResumeAnalyzer interface {
	Analyze(ctx context.Context, content []byte, filename, jobDescription string) (*domain.AnalysisResult, error)
}

// ResumeProcessor is the inbound contract for asynchronous analysis of
// an already-uploaded resume.
type ResumeProcessor interface {
	ProcessByID(ctx context.Context, resumeID string) error
}

// ResumeReader is the inbound read model for resume records.
type ResumeReader interface {
	GetByID(ctx context.Context, id string) (*domain.Resume, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.Resume, error)
}

// JobMatcher matches plain resume text against a job description.
type JobMatcher interface {
	Match(ctx context.Context, resumeText, jobDescription string) (*domain.JobMatch, error)
}
