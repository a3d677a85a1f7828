package domain

import (
	"context"
	"time"
)

// RatingNote is one admin score attached to a candidate. The roster averages
// all of a candidate's scores with no weighting or recency decay.
type RatingNote struct {
	ID           int64     `json:"id"`
	CandidateKey string    `json:"candidate_key"`
	AdminID      string    `json:"admin_id"`
	Section      Section   `json:"section" validate:"omitempty"`
	Score        int       `json:"score" validate:"required,min=1,max=5"`
	Note         string    `json:"note" validate:"max=2000"`
	CreatedAt    time.Time `json:"created_at"`
}

type RatingRepository interface {
	Create(ctx context.Context, note *RatingNote) error
	ListByCandidate(ctx context.Context, candidateKey string) ([]RatingNote, error)
	ListAll(ctx context.Context) ([]RatingNote, error)
	DeleteByCandidate(ctx context.Context, candidateKey string) error
}
