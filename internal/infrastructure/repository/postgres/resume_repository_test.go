package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/kirillkom/ats-resume-analyzer/internal/core/domain"
)

func newMockRepo(t *testing.T) (*ResumeRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewResumeRepository(db), mock
}

func resumeColumns() []string {
	return []string{
		"id", "user_id", "filename", "storage_key",
		"status", "error_message", "analysis", "created_at", "updated_at",
	}
}

func TestCreateInsertsRecord(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO resumes")).
		WithArgs("r-1", "u-1", "resume.pdf", "r-1_resume.pdf", "uploaded", "", now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &domain.Resume{
		ID:         "r-1",
		UserID:     "u-1",
		Filename:   "resume.pdf",
		StorageKey: "r-1_resume.pdf",
		Status:     domain.StatusUploaded,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetByIDDecodesAnalysis(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	years := 5
	analysisJSON, err := json.Marshal(&domain.AnalysisResult{
		ATSScore:        25.0,
		ExperienceYears: &years,
		Keywords:        []string{"python"},
	})
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, filename, storage_key, status, error_message, analysis, created_at, updated_at")).
		WithArgs("r-1").
		WillReturnRows(sqlmock.NewRows(resumeColumns()).AddRow(
			"r-1", "u-1", "resume.pdf", "r-1_resume.pdf",
			"ready", nil, analysisJSON, now, now,
		))

	resume, err := repo.GetByID(context.Background(), "r-1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if resume.Status != domain.StatusReady {
		t.Fatalf("status = %s, want ready", resume.Status)
	}
	if resume.Analysis == nil || resume.Analysis.ATSScore != 25.0 {
		t.Fatalf("analysis not decoded: %+v", resume.Analysis)
	}
	if resume.Analysis.ExperienceYears == nil || *resume.Analysis.ExperienceYears != 5 {
		t.Fatalf("experience years not decoded: %+v", resume.Analysis)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if !domain.IsKind(err, domain.ErrResumeNotFound) {
		t.Fatalf("error = %v, want ErrResumeNotFound", err)
	}
}

func TestListByUserAppliesLimitAndOrder(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WithArgs("u-1", 10).
		WillReturnRows(sqlmock.NewRows(resumeColumns()).
			AddRow("r-2", "u-1", "b.pdf", "r-2_b.pdf", "ready", nil, nil, now, now).
			AddRow("r-1", "u-1", "a.pdf", "r-1_a.pdf", "failed", "boom", nil, now.Add(-time.Hour), now))

	resumes, err := repo.ListByUser(context.Background(), "u-1", 10)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(resumes) != 2 || resumes[0].ID != "r-2" {
		t.Fatalf("resumes = %+v", resumes)
	}
	if resumes[1].Error != "boom" {
		t.Fatalf("error message not scanned: %+v", resumes[1])
	}
}

func TestListByUserDefaultsLimit(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WithArgs("u-1", defaultHistoryLimit).
		WillReturnRows(sqlmock.NewRows(resumeColumns()))

	if _, err := repo.ListByUser(context.Background(), "u-1", 0); err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateStatusNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE resumes")).
		WithArgs("missing", "processing", "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "missing", domain.StatusProcessing, "")
	if !domain.IsKind(err, domain.ErrResumeNotFound) {
		t.Fatalf("error = %v, want ErrResumeNotFound", err)
	}
}

func TestSaveAnalysisWritesJSON(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("SET analysis = $2")).
		WithArgs("r-1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SaveAnalysis(context.Background(), "r-1", &domain.AnalysisResult{ATSScore: 80.0})
	if err != nil {
		t.Fatalf("SaveAnalysis() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
