package domain

import (
	"context"
	"time"
)

// CandidateExport is the downloadable view of one candidate: identity,
// section answers, ratings and the averaged score. Read-side only, never
// persisted.
type CandidateExport struct {
	Identifier       Identifier       `json:"identifier"`
	Name             string           `json:"name"`
	Email            string           `json:"email"`
	SubmissionStatus SubmissionStatus `json:"submission_status"`
	SubmittedAt      *time.Time       `json:"submitted_at,omitempty"`
	Answers          AnswerSet        `json:"answers"`
	Ratings          []RatingNote     `json:"ratings"`
	OverallScore     *float64         `json:"overall_score"`
	GeneratedAt      time.Time        `json:"generated_at"`
}

type ExportUsecase interface {
	ExportCandidate(ctx context.Context, id Identifier) (*CandidateExport, error)
}
