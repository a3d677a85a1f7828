package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-interview-portal/internal/domain"
	"go-interview-portal/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAddRating(t *testing.T) {
	validate := validator.New()

	t.Run("Should force admin id from context", func(t *testing.T) {
		mockRepo := new(MockRatingRepo)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.RatingNote")).Return(nil).Run(func(args mock.Arguments) {
			note := args.Get(1).(*domain.RatingNote)
			assert.Equal(t, "admin1", note.AdminID)
		})
		uc := usecase.NewRatingUsecase(mockRepo, validate)

		ctx := context.WithValue(adminCtx(), domain.KeyUserID, "admin1")
		err := uc.AddRating(ctx, &domain.RatingNote{
			CandidateKey: "user1",
			AdminID:      "spoofed",
			Score:        4,
		})
		assert.NoError(t, err)
	})

	t.Run("Should reject score outside 1-5", func(t *testing.T) {
		uc := usecase.NewRatingUsecase(new(MockRatingRepo), validate)

		ctx := context.WithValue(adminCtx(), domain.KeyUserID, "admin1")
		err := uc.AddRating(ctx, &domain.RatingNote{CandidateKey: "user1", Score: 6})
		assert.Error(t, err)
	})

	t.Run("Should reject non-admin", func(t *testing.T) {
		uc := usecase.NewRatingUsecase(new(MockRatingRepo), validate)
		err := uc.AddRating(context.Background(), &domain.RatingNote{CandidateKey: "user1", Score: 3})
		assert.Error(t, err)
	})
}

func TestExportCandidate(t *testing.T) {
	exportFixture := func() (*MockAnswerRepo, *MockProgressRepo, *MockUserRepo, *MockRatingRepo, domain.ExportUsecase) {
		answerRepo := new(MockAnswerRepo)
		progressRepo := new(MockProgressRepo)
		userRepo := new(MockUserRepo)
		ratingRepo := new(MockRatingRepo)
		uc := usecase.NewExportUsecase(
			usecase.NewAnswerUsecase(answerRepo),
			usecase.NewProgressUsecase(progressRepo),
			userRepo,
			ratingRepo,
		)
		return answerRepo, progressRepo, userRepo, ratingRepo, uc
	}

	t.Run("Should assemble answers, progress and mean score", func(t *testing.T) {
		answerRepo, progressRepo, userRepo, ratingRepo, uc := exportFixture()
		id := domain.AccountIdentifier("user1")
		submitted := time.Now()

		userRepo.On("GetByID", mock.Anything, "user1").Return(&domain.User{ID: "user1", Email: "alice@example.com"}, nil)
		answerRepo.On("ListByIdentifier", mock.Anything, id).Return([]domain.Answer{
			{Section: domain.SectionGeneral, QuestionKey: "experience", Value: domain.PlainAnswer("ten years")},
		}, nil)
		progressRepo.On("GetByIdentifier", mock.Anything, id).Return(&domain.Progress{
			IdentifierKey:    "user1",
			CurrentStep:      domain.FinalStep,
			SubmissionStatus: domain.StatusCompleted,
			SubmittedAt:      &submitted,
		}, nil)
		ratingRepo.On("ListByCandidate", mock.Anything, "user1").Return([]domain.RatingNote{
			{CandidateKey: "user1", Score: 3},
			{CandidateKey: "user1", Score: 5},
		}, nil)

		export, err := uc.ExportCandidate(adminCtx(), id)
		assert.NoError(t, err)
		assert.Equal(t, "alice@example.com", export.Email)
		assert.Equal(t, domain.StatusCompleted, export.SubmissionStatus)
		assert.Len(t, export.Answers[domain.SectionGeneral], 1)
		if assert.NotNil(t, export.OverallScore) {
			assert.InDelta(t, 4.0, *export.OverallScore, 0.001)
		}
	})

	t.Run("Should export even when ratings are unavailable", func(t *testing.T) {
		answerRepo, progressRepo, _, ratingRepo, uc := exportFixture()
		id := domain.AnonymousIdentifier("bob@example.com")

		answerRepo.On("ListByIdentifier", mock.Anything, id).Return([]domain.Answer{}, nil)
		progressRepo.On("GetByIdentifier", mock.Anything, id).Return(nil, nil)
		ratingRepo.On("ListByCandidate", mock.Anything, id.Key()).Return(nil, errors.New("timeout"))

		export, err := uc.ExportCandidate(adminCtx(), id)
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusNotStarted, export.SubmissionStatus)
		assert.Nil(t, export.OverallScore)
	})

	t.Run("Should reject non-admin", func(t *testing.T) {
		_, _, _, _, uc := exportFixture()
		_, err := uc.ExportCandidate(context.Background(), domain.AccountIdentifier("user1"))
		assert.Error(t, err)
	})
}
