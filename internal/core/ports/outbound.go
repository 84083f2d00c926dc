package ports

import (
	"context"
	"io"
	"time"

	"github.com/kirillkom/ats-resume-analyzer/internal/core/domain"
)

// ResumeRepository persists and reads resume records.
type ResumeRepository interface {
	Create(ctx context.Context, resume *domain.Resume) error
	GetByID(ctx context.Context, id string) (*domain.Resume, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.Resume, error)
	UpdateStatus(ctx context.Context, id string, status domain.ResumeStatus, errMessage string) error
	SaveAnalysis(ctx context.Context, id string, result *domain.AnalysisResult) error
}

// ObjectStorage stores uploaded resume binaries.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue publishes/consumes resume-uploaded events.
type MessageQueue interface {
	PublishResumeUploaded(ctx context.Context, resumeID string) error
	SubscribeResumeUploaded(ctx context.Context, handler func(context.Context, string) error) error
}

// TextExtractor converts document bytes into plain text. The extension
// of filename selects the container format; implementations never touch
// the filesystem.
type TextExtractor interface {
	Extract(ctx context.Context, content []byte, filename string) (string, error)
}

// ResultCache memoizes analysis results by content fingerprint. Get
// reports a miss with ok=false; implementations treat backend failures
// as misses so the pipeline stays available without the cache.
type ResultCache interface {
	Get(ctx context.Context, fingerprint string) (*domain.AnalysisResult, bool)
	Set(ctx context.Context, fingerprint string, result *domain.AnalysisResult, ttl time.Duration)
}
