package usecase

import (
	"context"
	"time"

	"go-interview-portal/internal/domain"
	"go-interview-portal/pkg/apperror"
)

type progressUsecase struct {
	repo domain.ProgressRepository
}

func NewProgressUsecase(repo domain.ProgressRepository) domain.ProgressUsecase {
	return &progressUsecase{repo: repo}
}

func (u *progressUsecase) LoadProgress(ctx context.Context, id domain.Identifier) (*domain.Progress, error) {
	if id.IsZero() {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	progress, err := u.repo.GetByIdentifier(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	// nil means not found; the wizard starts fresh at step 1
	return progress, nil
}

func (u *progressUsecase) UpdateProgress(ctx context.Context, id domain.Identifier, step int, completedSections map[string]bool) (*domain.Progress, error) {
	if id.IsZero() {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if step < domain.FirstStep || step > domain.FinalStep {
		return nil, apperror.BadRequest("Step out of range")
	}

	status, submittedAt := domain.DeriveSubmission(step, completedSections, time.Now())

	progress := &domain.Progress{
		IdentifierKey:     id.Key(),
		CurrentStep:       step,
		CompletedSections: completedSections,
		SubmissionStatus:  status,
		SubmittedAt:       submittedAt,
	}

	if err := u.repo.Upsert(ctx, id, progress); err != nil {
		return nil, apperror.Internal(err)
	}
	return progress, nil
}
