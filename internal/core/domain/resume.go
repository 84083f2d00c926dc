package domain

import "time"

type ResumeStatus string

const (
	StatusUploaded   ResumeStatus = "uploaded"
	StatusProcessing ResumeStatus = "processing"
	StatusReady      ResumeStatus = "ready"
	StatusFailed     ResumeStatus = "failed"
)

// Resume is the persisted record for one uploaded document. Analysis is
// nil until the processing pipeline has run for it.
type Resume struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	Filename   string          `json:"filename"`
	StorageKey string          `json:"storage_key"`
	Status     ResumeStatus    `json:"status"`
	Error      string          `json:"error,omitempty"`
	Analysis   *AnalysisResult `json:"analysis,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// JobMatch is the outcome of matching plain resume text against a job
// description without going through file extraction.
type JobMatch struct {
	MatchPercentage   float64  `json:"match_percentage"`
	Gaps              []string `json:"gaps"`
	LearningResources []string `json:"learning_resources"`
	PassProbability   float64  `json:"pass_probability"`
}
