package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kirillkom/ats-resume-analyzer/internal/config"
	"github.com/kirillkom/ats-resume-analyzer/internal/core/analysis"
	"github.com/kirillkom/ats-resume-analyzer/internal/core/ports"
	"github.com/kirillkom/ats-resume-analyzer/internal/core/usecase"
	"github.com/kirillkom/ats-resume-analyzer/internal/infrastructure/cache/memory"
	"github.com/kirillkom/ats-resume-analyzer/internal/infrastructure/cache/redis"
	"github.com/kirillkom/ats-resume-analyzer/internal/infrastructure/extractor"
	"github.com/kirillkom/ats-resume-analyzer/internal/infrastructure/queue/nats"
	"github.com/kirillkom/ats-resume-analyzer/internal/infrastructure/repository/postgres"
	"github.com/kirillkom/ats-resume-analyzer/internal/infrastructure/resilience"
	"github.com/kirillkom/ats-resume-analyzer/internal/infrastructure/storage/localfs"
)

type App struct {
	Config     config.Config
	Vocabulary *analysis.SkillVocabulary

	Queue     ports.MessageQueue
	Repo      ports.ResumeRepository
	IngestUC  ports.ResumeIngestor
	AnalyzeUC ports.ResumeAnalyzer
	ProcessUC ports.ResumeProcessor
	MatchUC   ports.JobMatcher

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewResumeRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: resilience.NewExecutor(resilience.DefaultConfig()),
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	vocabulary, err := analysis.LoadVocabulary()
	if err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}
	engine, err := analysis.NewEngine(vocabulary)
	if err != nil {
		return nil, fmt.Errorf("init analysis engine: %w", err)
	}

	cache, err := newResultCache(cfg)
	if err != nil {
		return nil, fmt.Errorf("init result cache: %w", err)
	}

	docExtractor := extractor.New()
	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second

	analyzeUC := usecase.NewAnalyzeResumeUseCase(docExtractor, cache, engine, cacheTTL)
	ingestUC := usecase.NewIngestResumeUseCase(repo, storage, queue, analyzeUC)
	processUC := usecase.NewProcessResumeUseCase(repo, storage, analyzeUC)
	matchUC := usecase.NewMatchJobUseCase(engine)

	return &App{
		Config:     cfg,
		Vocabulary: vocabulary,

		Queue: queue,
		Repo:  repo,

		IngestUC:  ingestUC,
		AnalyzeUC: analyzeUC,
		ProcessUC: processUC,
		MatchUC:   matchUC,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

// newResultCache selects the cache backend. Redis keeps results across
// restarts and shares them between replicas; memory is the
// single-process default.
func newResultCache(cfg config.Config) (ports.ResultCache, error) {
	switch cfg.CacheBackend {
	case "redis":
		return redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	case "", "memory":
		return memory.New(), nil
	default:
		slog.Warn("unknown_cache_backend", "backend", cfg.CacheBackend)
		return memory.New(), nil
	}
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
