package usecase

import (
	"context"
	"time"

	"go-interview-portal/internal/domain"
	"go-interview-portal/pkg/apperror"
	"go-interview-portal/pkg/logger"
)

type exportUsecase struct {
	answers    domain.AnswerUsecase
	progress   domain.ProgressUsecase
	userRepo   domain.UserRepository
	ratingRepo domain.RatingRepository
}

func NewExportUsecase(answers domain.AnswerUsecase, progress domain.ProgressUsecase, userRepo domain.UserRepository, ratingRepo domain.RatingRepository) domain.ExportUsecase {
	return &exportUsecase{
		answers:    answers,
		progress:   progress,
		userRepo:   userRepo,
		ratingRepo: ratingRepo,
	}
}

// ExportCandidate assembles the downloadable document for one candidate.
// Pure read-side transformation; nothing is persisted.
func (u *exportUsecase) ExportCandidate(ctx context.Context, id domain.Identifier) (*domain.CandidateExport, error) {
	ctxRole, ok := ctx.Value(domain.KeyUserRole).(string)
	if !ok || ctxRole != "admin" {
		return nil, apperror.Forbidden("Only admins can export candidates")
	}

	export := &domain.CandidateExport{
		Identifier:       id,
		SubmissionStatus: domain.StatusNotStarted,
		GeneratedAt:      time.Now(),
	}

	switch id.Kind {
	case domain.IdentifierAccount:
		user, err := u.userRepo.GetByID(ctx, id.UserID)
		if err != nil {
			return nil, apperror.NotFound("Candidate not found")
		}
		export.Email = user.Email
		export.Name = user.Email
	case domain.IdentifierAnonymous:
		export.Email = id.Email
		export.Name = id.Email
	default:
		return nil, apperror.BadRequest("Unknown identifier kind")
	}

	answers, err := u.answers.LoadAnswers(ctx, id)
	if err != nil {
		return nil, err
	}
	export.Answers = answers

	progress, err := u.progress.LoadProgress(ctx, id)
	if err != nil {
		return nil, err
	}
	if progress != nil {
		export.SubmissionStatus = progress.SubmissionStatus
		export.SubmittedAt = progress.SubmittedAt
	}

	// Ratings enrich the document but their absence never blocks an export.
	ratings, err := u.ratingRepo.ListByCandidate(ctx, id.Key())
	if err != nil {
		logger.Log.Warn("export: ratings unavailable", "candidate_key", id.Key(), "error", err)
		ratings = nil
	}
	export.Ratings = ratings
	if len(ratings) > 0 {
		sum := 0
		for _, r := range ratings {
			sum += r.Score
		}
		mean := float64(sum) / float64(len(ratings))
		export.OverallScore = &mean
	}

	return export, nil
}
