package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/kirillkom/ats-resume-analyzer/internal/config"
	"github.com/kirillkom/ats-resume-analyzer/internal/core/analysis"
	"github.com/kirillkom/ats-resume-analyzer/internal/core/domain"
	"github.com/kirillkom/ats-resume-analyzer/internal/core/ports"
	"github.com/kirillkom/ats-resume-analyzer/internal/infrastructure/report"
	"github.com/kirillkom/ats-resume-analyzer/internal/observability/metrics"
)

const (
	serviceName            = "ats-api"
	backpressureWaitBudget = 2 * time.Second
)

type Router struct {
	cfg        config.Config
	ingestor   ports.ResumeIngestor
	analyzer   ports.ResumeAnalyzer
	reader     ports.ResumeReader
	matcher    ports.JobMatcher
	vocabulary *analysis.SkillVocabulary
	metrics    *metrics.HTTPServerMetrics
}

func NewRouter(
	cfg config.Config,
	ingestor ports.ResumeIngestor,
	analyzer ports.ResumeAnalyzer,
	reader ports.ResumeReader,
	matcher ports.JobMatcher,
	vocabulary *analysis.SkillVocabulary,
	httpMetrics *metrics.HTTPServerMetrics,
) *Router {
	return &Router{
		cfg:        cfg,
		ingestor:   ingestor,
		analyzer:   analyzer,
		reader:     reader,
		matcher:    matcher,
		vocabulary: vocabulary,
		metrics:    httpMetrics,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/resumes", rt.resumesCollection)
	mux.HandleFunc("/v1/resumes/", rt.resumesSubtree)
	mux.HandleFunc("/v1/jobs/match", rt.matchJob)
	mux.HandleFunc("/v1/keywords", rt.keywords)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	handler = backpressureMiddleware(handler, rt.cfg.APIMaxInFlight, backpressureWaitBudget)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) resumesCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		rt.uploadResume(w, r)
	case http.MethodGet:
		rt.listResumes(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func (rt *Router) resumesSubtree(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/resumes/")
	switch rest {
	case "analyze":
		rt.analyzeResume(w, r)
	case "export":
		rt.exportHistory(w, r)
	default:
		rt.getResumeByID(w, r, rest)
	}
}

func (rt *Router) uploadResume(w http.ResponseWriter, r *http.Request) {
	file, fileHeader, userID, ok := rt.resumeUploadForm(w, r)
	if !ok {
		return
	}
	defer file.Close()

	resume, err := rt.ingestor.Upload(r.Context(), userID, fileHeader.Filename, file)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, resume)
}

func (rt *Router) analyzeResume(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	file, fileHeader, userID, ok := rt.resumeUploadForm(w, r)
	if !ok {
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "read multipart file: " + err.Error()})
		return
	}

	start := time.Now()
	result, err := rt.runSyncAnalysis(r.Context(), userID, fileHeader.Filename, content, r.FormValue("job_description"))
	if rt.metrics != nil {
		score := 0.0
		if result != nil {
			score = result.ATSScore
		}
		rt.metrics.RecordAnalysis(serviceName, err, time.Since(start), score)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// runSyncAnalysis keeps anonymous calls stateless; a request with a
// user_id additionally lands a ready record in that user's history.
func (rt *Router) runSyncAnalysis(ctx context.Context, userID, filename string, content []byte, jobDescription string) (*domain.AnalysisResult, error) {
	if userID == "" {
		return rt.analyzer.Analyze(ctx, content, filename, jobDescription)
	}
	resume, err := rt.ingestor.UploadAnalyzed(ctx, userID, filename, content, jobDescription)
	if err != nil {
		return nil, err
	}
	return resume.Analysis, nil
}

// resumeUploadForm reads the multipart "file" field plus the optional
// "user_id" field shared by the upload and analyze endpoints. On
// failure it writes the error response and reports ok=false.
func (rt *Router) resumeUploadForm(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, rt.cfg.MaxUploadBytes)

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "uploaded file exceeds size limit"})
			return nil, nil, "", false
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return nil, nil, "", false
	}

	return file, fileHeader, r.FormValue("user_id"), true
}

func (rt *Router) getResumeByID(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if id == "" || strings.Contains(id, "/") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "resume id is required"})
		return
	}

	resume, err := rt.reader.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resume)
}

func (rt *Router) listResumes(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query parameter 'user_id' is required"})
		return
	}

	resumes, err := rt.reader.ListByUser(r.Context(), userID, rt.cfg.HistoryLimit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"resumes": resumes})
}

func (rt *Router) exportHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query parameter 'user_id' is required"})
		return
	}

	resumes, err := rt.reader.ListByUser(r.Context(), userID, rt.cfg.HistoryLimit)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="resume-history.xlsx"`)
	if err := report.WriteHistoryXLSX(w, resumes); err != nil {
		// Headers are already sent; the truncated body is the best we can do.
		return
	}
}

func (rt *Router) matchJob(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		ResumeText     string `json:"resume_text"`
		JobDescription string `json:"job_description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	match, err := rt.matcher.Match(r.Context(), req.ResumeText, req.JobDescription)
	if rt.metrics != nil {
		rt.metrics.RecordJobMatch(serviceName, err)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, match)
}

func (rt *Router) keywords(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"version":    rt.vocabulary.Version,
		"categories": rt.vocabulary.Categories,
	})
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
