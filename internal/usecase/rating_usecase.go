package usecase

import (
	"context"

	"go-interview-portal/internal/domain"
	"go-interview-portal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

// RatingUsecase manages admin rating notes on candidates.
type RatingUsecase interface {
	AddRating(ctx context.Context, note *domain.RatingNote) error
	ListRatings(ctx context.Context, candidateKey string) ([]domain.RatingNote, error)
}

type ratingUsecase struct {
	repo     domain.RatingRepository
	validate *validator.Validate
}

func NewRatingUsecase(repo domain.RatingRepository, validate *validator.Validate) RatingUsecase {
	return &ratingUsecase{repo: repo, validate: validate}
}

func (u *ratingUsecase) AddRating(ctx context.Context, note *domain.RatingNote) error {
	ctxRole, ok := ctx.Value(domain.KeyUserRole).(string)
	if !ok || ctxRole != "admin" {
		return apperror.Forbidden("Only admins can rate candidates")
	}
	adminID, _ := ctx.Value(domain.KeyUserID).(string)
	note.AdminID = adminID

	if note.CandidateKey == "" {
		return apperror.BadRequest("Candidate key is required")
	}
	if note.Section != "" && !note.Section.IsValid() {
		return apperror.BadRequest("Unknown section: " + string(note.Section))
	}
	if err := u.validate.Struct(note); err != nil {
		return apperror.BadRequest(err.Error())
	}

	return u.repo.Create(ctx, note)
}

func (u *ratingUsecase) ListRatings(ctx context.Context, candidateKey string) ([]domain.RatingNote, error) {
	ctxRole, ok := ctx.Value(domain.KeyUserRole).(string)
	if !ok || ctxRole != "admin" {
		return nil, apperror.Forbidden("Only admins can view ratings")
	}
	return u.repo.ListByCandidate(ctx, candidateKey)
}
