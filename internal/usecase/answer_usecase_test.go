package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go-interview-portal/internal/domain"
	"go-interview-portal/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSaveAnswer(t *testing.T) {
	id := domain.AccountIdentifier("user1")

	t.Run("Should reject zero identifier", func(t *testing.T) {
		uc := usecase.NewAnswerUsecase(new(MockAnswerRepo))
		err := uc.SaveAnswer(context.Background(), domain.Identifier{}, domain.SectionGeneral, "experience", domain.PlainAnswer("ten years"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "User not authenticated")
	})

	t.Run("Should reject unknown section", func(t *testing.T) {
		uc := usecase.NewAnswerUsecase(new(MockAnswerRepo))
		err := uc.SaveAnswer(context.Background(), id, domain.Section("hobbies"), "experience", domain.PlainAnswer("ten years"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Unknown section")
	})

	t.Run("Should reject whitespace-only plain value", func(t *testing.T) {
		mockRepo := new(MockAnswerRepo)
		uc := usecase.NewAnswerUsecase(mockRepo)
		err := uc.SaveAnswer(context.Background(), id, domain.SectionGeneral, "experience", domain.PlainAnswer("   \n\t"))
		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "Save")
	})

	t.Run("Should accept structured value regardless of content", func(t *testing.T) {
		mockRepo := new(MockAnswerRepo)
		mockRepo.On("Save", mock.Anything, id, domain.SectionTechnicalExercises, "exercise_sql", mock.Anything).Return(nil)
		uc := usecase.NewAnswerUsecase(mockRepo)

		value := domain.StructuredAnswer(json.RawMessage(`{"query":"SELECT 1","notes":["fast"]}`))
		err := uc.SaveAnswer(context.Background(), id, domain.SectionTechnicalExercises, "exercise_sql", value)
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestLoadAnswers(t *testing.T) {
	id := domain.AccountIdentifier("user1")

	t.Run("Should reshape stored tuples into section map", func(t *testing.T) {
		mockRepo := new(MockAnswerRepo)
		mockRepo.On("ListByIdentifier", mock.Anything, id).Return([]domain.Answer{
			{Section: domain.SectionGeneral, QuestionKey: "experience", Value: domain.PlainAnswer("ten years"), UpdatedAt: time.Now()},
			{Section: domain.SectionGeneral, QuestionKey: "motivation", Value: domain.PlainAnswer("growth"), UpdatedAt: time.Now()},
			{Section: domain.SectionCulture, QuestionKey: "team_conflict", Value: domain.PlainAnswer("talk it out"), UpdatedAt: time.Now()},
		}, nil)
		uc := usecase.NewAnswerUsecase(mockRepo)

		set, err := uc.LoadAnswers(context.Background(), id)
		assert.NoError(t, err)
		assert.Len(t, set[domain.SectionGeneral], 2)

		v, ok := set.Get(domain.SectionCulture, "team_conflict")
		assert.True(t, ok)
		assert.Equal(t, "talk it out", v.Text)
	})

	t.Run("Should return empty set when nothing stored", func(t *testing.T) {
		mockRepo := new(MockAnswerRepo)
		mockRepo.On("ListByIdentifier", mock.Anything, id).Return([]domain.Answer{}, nil)
		uc := usecase.NewAnswerUsecase(mockRepo)

		set, err := uc.LoadAnswers(context.Background(), id)
		assert.NoError(t, err)
		assert.Empty(t, set)
	})
}
