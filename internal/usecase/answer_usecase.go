package usecase

import (
	"context"

	"go-interview-portal/internal/domain"
	"go-interview-portal/pkg/apperror"
)

type answerUsecase struct {
	repo domain.AnswerRepository
}

func NewAnswerUsecase(repo domain.AnswerRepository) domain.AnswerUsecase {
	return &answerUsecase{repo: repo}
}

func (u *answerUsecase) SaveAnswer(ctx context.Context, id domain.Identifier, section domain.Section, questionKey string, value domain.AnswerValue) error {
	if id.IsZero() {
		return apperror.Unauthorized("User not authenticated")
	}
	if !section.IsValid() {
		return apperror.BadRequest("Unknown section: " + string(section))
	}
	if questionKey == "" {
		return apperror.BadRequest("Question key is required")
	}
	// Callers filter whitespace-only edits before calling; this is the
	// backstop. Structured values are always accepted.
	if value.Kind == domain.AnswerPlain && value.IsEmpty() {
		return apperror.BadRequest("Answer value must not be empty")
	}

	if err := u.repo.Save(ctx, id, section, questionKey, value); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// LoadAnswers reshapes the stored tuples into section -> key -> value,
// restoring each value from its tagged envelope. This is the exact inverse
// of SaveAnswer's encoding.
func (u *answerUsecase) LoadAnswers(ctx context.Context, id domain.Identifier) (domain.AnswerSet, error) {
	if id.IsZero() {
		return nil, apperror.Unauthorized("User not authenticated")
	}

	answers, err := u.repo.ListByIdentifier(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	set := make(domain.AnswerSet)
	for _, a := range answers {
		set.Put(a.Section, a.QuestionKey, a.Value)
	}
	return set, nil
}
