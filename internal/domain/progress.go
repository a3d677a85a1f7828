package domain

import (
	"context"
	"time"
)

// Wizard steps. Steps 1-4 map to the four answer sections; step 5 is
// Review & Submit.
const (
	FirstStep = 1
	FinalStep = 5
)

// SubmissionStatus is the derived lifecycle state of a candidate's interview.
type SubmissionStatus string

const (
	StatusNotStarted SubmissionStatus = "not-started"
	StatusDraft      SubmissionStatus = "draft"
	StatusInProgress SubmissionStatus = "in-progress"
	StatusCompleted  SubmissionStatus = "completed"
	StatusInvited    SubmissionStatus = "invited"
)

// Progress is the single per-identifier wizard record. The transition to
// completed is one-way: once SubmissionStatus is completed, later updates
// must not downgrade it.
type Progress struct {
	IdentifierKey     string           `json:"-"`
	CurrentStep       int              `json:"current_step"`
	CompletedSections map[string]bool  `json:"completed_sections,omitempty"`
	SubmissionStatus  SubmissionStatus `json:"submission_status"`
	SubmittedAt       *time.Time       `json:"submitted_at,omitempty"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// DeriveSubmission computes the status and submission timestamp purely from
// the update inputs: completed iff the step is the final step AND a completed
// sections map was provided; otherwise in-progress with a nil timestamp.
func DeriveSubmission(step int, completedSections map[string]bool, now time.Time) (SubmissionStatus, *time.Time) {
	if step == FinalStep && completedSections != nil {
		return StatusCompleted, &now
	}
	return StatusInProgress, nil
}

type ProgressRepository interface {
	// GetByIdentifier returns (nil, nil) when no record exists; absence is
	// not an error.
	GetByIdentifier(ctx context.Context, id Identifier) (*Progress, error)
	Upsert(ctx context.Context, id Identifier, progress *Progress) error
	ListAll(ctx context.Context) ([]Progress, error)
	DeleteByIdentifier(ctx context.Context, id Identifier) error
}

type ProgressUsecase interface {
	LoadProgress(ctx context.Context, id Identifier) (*Progress, error)
	UpdateProgress(ctx context.Context, id Identifier, step int, completedSections map[string]bool) (*Progress, error)
}
