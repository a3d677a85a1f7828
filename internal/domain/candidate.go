package domain

import (
	"context"
	"time"
)

type CandidateProfile struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id" validate:"required"`
	FullName  string    `json:"full_name" validate:"required,min=2,max=100"`
	Phone     string    `json:"phone" validate:"max=32"`
	Skills    []string  `json:"skills" validate:"max=50"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CandidateRepository interface {
	GetByUserID(ctx context.Context, userID string) (*CandidateProfile, error)
	Create(ctx context.Context, profile *CandidateProfile) error
	Update(ctx context.Context, profile *CandidateProfile) error
	DeleteByUserID(ctx context.Context, userID string) error
}

type CandidateUsecase interface {
	GetProfile(ctx context.Context, userID string) (*CandidateProfile, error)
	UpdateProfile(ctx context.Context, profile *CandidateProfile) error
}
