package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/kirillkom/ats-resume-analyzer/internal/core/domain"
)

const defaultHistoryLimit = 50

type ResumeRepository struct {
	db *sql.DB
}

func NewResumeRepository(db *sql.DB) *ResumeRepository {
	return &ResumeRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *ResumeRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026082901)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS resumes (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	filename TEXT NOT NULL,
	storage_key TEXT NOT NULL,
	status TEXT NOT NULL,
	error_message TEXT,
	analysis JSONB,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_resumes_status ON resumes(status);
CREATE INDEX IF NOT EXISTS idx_resumes_user_created ON resumes(user_id, created_at DESC);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *ResumeRepository) Create(ctx context.Context, resume *domain.Resume) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO resumes (
	id, user_id, filename, storage_key, status, error_message, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
`,
		resume.ID, resume.UserID, resume.Filename, resume.StorageKey,
		string(resume.Status), resume.Error, resume.CreatedAt, resume.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert resume: %w", err)
	}
	return nil
}

func (r *ResumeRepository) GetByID(ctx context.Context, id string) (*domain.Resume, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, user_id, filename, storage_key, status, error_message, analysis, created_at, updated_at
FROM resumes
WHERE id = $1
`, id)

	resume, err := scanResume(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrResumeNotFound, "get resume", fmt.Errorf("id %s", id))
		}
		return nil, fmt.Errorf("scan resume: %w", err)
	}
	return resume, nil
}

func (r *ResumeRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Resume, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, filename, storage_key, status, error_message, analysis, created_at, updated_at
FROM resumes
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2
`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query resumes: %w", err)
	}
	defer rows.Close()

	var resumes []domain.Resume
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, fmt.Errorf("scan resume: %w", err)
		}
		resumes = append(resumes, *resume)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate resumes: %w", err)
	}
	return resumes, nil
}

func (r *ResumeRepository) UpdateStatus(ctx context.Context, id string, status domain.ResumeStatus, errMessage string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE resumes
SET status = $2, error_message = $3, updated_at = $4
WHERE id = $1
`, id, string(status), errMessage, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update resume status: %w", err)
	}
	return requireRowAffected(res, "update resume status", id)
}

func (r *ResumeRepository) SaveAnalysis(ctx context.Context, id string, result *domain.AnalysisResult) error {
	analysisJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `
UPDATE resumes
SET analysis = $2, updated_at = $3
WHERE id = $1
`, id, analysisJSON, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save analysis: %w", err)
	}
	return requireRowAffected(res, "save analysis", id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (*domain.Resume, error) {
	var resume domain.Resume
	var status string
	var errMessage sql.NullString
	var analysisRaw []byte

	err := row.Scan(
		&resume.ID, &resume.UserID, &resume.Filename, &resume.StorageKey,
		&status, &errMessage, &analysisRaw, &resume.CreatedAt, &resume.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	resume.Status = domain.ResumeStatus(status)
	resume.Error = errMessage.String
	if len(analysisRaw) > 0 {
		var analysis domain.AnalysisResult
		if err := json.Unmarshal(analysisRaw, &analysis); err != nil {
			return nil, fmt.Errorf("unmarshal analysis: %w", err)
		}
		resume.Analysis = &analysis
	}
	return &resume, nil
}

func requireRowAffected(res sql.Result, operation, id string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", operation, err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrResumeNotFound, operation, fmt.Errorf("id %s", id))
	}
	return nil
}
