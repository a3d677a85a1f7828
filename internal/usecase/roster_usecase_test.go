package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-interview-portal/internal/domain"
	"go-interview-portal/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func rosterFixture() (*MockUserRepo, *MockInvitationRepo, *MockProgressRepo, *MockRatingRepo, *MockAdminRepo, domain.RosterUsecase) {
	userRepo := new(MockUserRepo)
	invRepo := new(MockInvitationRepo)
	progRepo := new(MockProgressRepo)
	ratingRepo := new(MockRatingRepo)
	adminRepo := new(MockAdminRepo)
	uc := usecase.NewRosterUsecase(userRepo, invRepo, progRepo, ratingRepo, adminRepo)
	return userRepo, invRepo, progRepo, ratingRepo, adminRepo, uc
}

func TestBuildRoster(t *testing.T) {
	t.Run("Should require admin role", func(t *testing.T) {
		_, _, _, _, _, uc := rosterFixture()
		_, err := uc.BuildRoster(context.Background())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Only admins")
	})

	t.Run("Should drop invitation when an account shares the email", func(t *testing.T) {
		userRepo, invRepo, progRepo, ratingRepo, _, uc := rosterFixture()
		userRepo.On("ListCandidates", mock.Anything).Return([]domain.CandidateAccount{
			{UserID: "user1", Email: "Alice@Example.com", Name: "Alice", CreatedAt: time.Now()},
		}, nil)
		invRepo.On("ListAll", mock.Anything).Return([]domain.Invitation{
			{ID: 1, CandidateEmail: "alice@example.com", CandidateName: "Alice", SentAt: time.Now()},
			{ID: 2, CandidateEmail: "bob@example.com", CandidateName: "Bob", SentAt: time.Now()},
		}, nil)
		progRepo.On("ListAll", mock.Anything).Return([]domain.Progress{}, nil)
		ratingRepo.On("ListAll", mock.Anything).Return([]domain.RatingNote{}, nil)

		result, err := uc.BuildRoster(adminCtx())
		assert.NoError(t, err)
		assert.Len(t, result.Entries, 2)

		kinds := map[string]domain.RosterRowKind{}
		for _, e := range result.Entries {
			kinds[e.Email] = e.Kind
		}
		assert.Equal(t, domain.RosterRowAccount, kinds["Alice@Example.com"])
		assert.Equal(t, domain.RosterRowInvitation, kinds["bob@example.com"])
	})

	t.Run("Should attach progress by identifier key", func(t *testing.T) {
		userRepo, invRepo, progRepo, ratingRepo, _, uc := rosterFixture()
		submitted := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
		userRepo.On("ListCandidates", mock.Anything).Return([]domain.CandidateAccount{
			{UserID: "user1", Email: "alice@example.com", Name: "Alice", CreatedAt: submitted.Add(-72 * time.Hour)},
		}, nil)
		invRepo.On("ListAll", mock.Anything).Return([]domain.Invitation{
			{ID: 2, CandidateEmail: "bob@example.com", CandidateName: "Bob", SentAt: submitted.Add(-24 * time.Hour)},
		}, nil)
		progRepo.On("ListAll", mock.Anything).Return([]domain.Progress{
			{IdentifierKey: "user1", CurrentStep: 5, SubmissionStatus: domain.StatusCompleted, SubmittedAt: &submitted},
			{IdentifierKey: "email:bob@example.com", CurrentStep: 2, SubmissionStatus: domain.StatusInProgress},
		}, nil)
		ratingRepo.On("ListAll", mock.Anything).Return([]domain.RatingNote{}, nil)

		result, err := uc.BuildRoster(adminCtx())
		assert.NoError(t, err)
		assert.Len(t, result.Entries, 2)

		byEmail := map[string]domain.RosterEntry{}
		for _, e := range result.Entries {
			byEmail[e.Email] = e
		}
		assert.Equal(t, domain.StatusCompleted, byEmail["alice@example.com"].SubmissionStatus)
		assert.Equal(t, submitted, byEmail["alice@example.com"].DateSubmitted)
		// Invitee who started anonymously shows real progress, not "invited"
		assert.Equal(t, domain.StatusInProgress, byEmail["bob@example.com"].SubmissionStatus)
	})

	t.Run("Should degrade gracefully when a source fails", func(t *testing.T) {
		userRepo, invRepo, progRepo, ratingRepo, _, uc := rosterFixture()
		userRepo.On("ListCandidates", mock.Anything).Return(nil, errors.New("connection refused"))
		invRepo.On("ListAll", mock.Anything).Return([]domain.Invitation{
			{ID: 2, CandidateEmail: "bob@example.com", CandidateName: "Bob", SentAt: time.Now()},
		}, nil)
		progRepo.On("ListAll", mock.Anything).Return([]domain.Progress{}, nil)
		ratingRepo.On("ListAll", mock.Anything).Return([]domain.RatingNote{}, nil)

		result, err := uc.BuildRoster(adminCtx())
		assert.NoError(t, err)
		assert.Len(t, result.Entries, 1)
		assert.Equal(t, domain.StatusInvited, result.Entries[0].SubmissionStatus)
		assert.NotEmpty(t, result.Warnings)
	})

	t.Run("Should sort newest submission first", func(t *testing.T) {
		userRepo, invRepo, progRepo, ratingRepo, _, uc := rosterFixture()
		old := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		recent := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
		userRepo.On("ListCandidates", mock.Anything).Return([]domain.CandidateAccount{
			{UserID: "user1", Email: "old@example.com", CreatedAt: old},
			{UserID: "user2", Email: "new@example.com", CreatedAt: recent},
		}, nil)
		invRepo.On("ListAll", mock.Anything).Return([]domain.Invitation{}, nil)
		progRepo.On("ListAll", mock.Anything).Return([]domain.Progress{}, nil)
		ratingRepo.On("ListAll", mock.Anything).Return([]domain.RatingNote{}, nil)

		result, err := uc.BuildRoster(adminCtx())
		assert.NoError(t, err)
		assert.Equal(t, "new@example.com", result.Entries[0].Email)
		assert.Equal(t, "old@example.com", result.Entries[1].Email)
	})

	t.Run("Should average rating scores per candidate", func(t *testing.T) {
		userRepo, invRepo, progRepo, ratingRepo, _, uc := rosterFixture()
		userRepo.On("ListCandidates", mock.Anything).Return([]domain.CandidateAccount{
			{UserID: "user1", Email: "alice@example.com", CreatedAt: time.Now()},
		}, nil)
		invRepo.On("ListAll", mock.Anything).Return([]domain.Invitation{}, nil)
		progRepo.On("ListAll", mock.Anything).Return([]domain.Progress{}, nil)
		ratingRepo.On("ListAll", mock.Anything).Return([]domain.RatingNote{
			{CandidateKey: "user1", Score: 4},
			{CandidateKey: "user1", Score: 5},
		}, nil)

		result, err := uc.BuildRoster(adminCtx())
		assert.NoError(t, err)
		if assert.NotNil(t, result.Entries[0].OverallScore) {
			assert.InDelta(t, 4.5, *result.Entries[0].OverallScore, 0.001)
		}
	})
}

func TestDeleteCandidate(t *testing.T) {
	t.Run("Should delete account data through admin repo", func(t *testing.T) {
		_, _, _, _, adminRepo, uc := rosterFixture()
		adminRepo.On("DeleteCandidateData", mock.Anything, domain.AccountIdentifier("user1")).Return(nil)

		err := uc.DeleteCandidate(adminCtx(), domain.RosterEntry{
			Kind:      domain.RosterRowAccount,
			AccountID: "user1",
		})
		assert.NoError(t, err)
		adminRepo.AssertExpectations(t)
	})

	t.Run("Should revoke invitation and drop anonymous data", func(t *testing.T) {
		_, invRepo, _, _, adminRepo, uc := rosterFixture()
		adminRepo.On("DeleteCandidateData", mock.Anything, domain.AnonymousIdentifier("bob@example.com")).Return(nil)
		invRepo.On("Delete", mock.Anything, int64(2)).Return(nil)

		err := uc.DeleteCandidate(adminCtx(), domain.RosterEntry{
			Kind:         domain.RosterRowInvitation,
			InvitationID: 2,
			Email:        "bob@example.com",
		})
		assert.NoError(t, err)
		invRepo.AssertExpectations(t)
		adminRepo.AssertExpectations(t)
	})

	t.Run("Should require admin role", func(t *testing.T) {
		_, _, _, _, _, uc := rosterFixture()
		err := uc.DeleteCandidate(context.Background(), domain.RosterEntry{Kind: domain.RosterRowAccount, AccountID: "user1"})
		assert.Error(t, err)
	})
}
