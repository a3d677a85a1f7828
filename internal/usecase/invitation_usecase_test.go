package usecase_test

import (
	"context"
	"testing"
	"time"

	"go-interview-portal/config"
	"go-interview-portal/internal/domain"
	"go-interview-portal/internal/usecase"
	"go-interview-portal/pkg/email"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// unconfigured SMTP: invitations persist, delivery is reported as skipped
func newInviteUsecase(repo domain.InvitationRepository) domain.InvitationUsecase {
	svc := email.NewEmailService(&config.Config{})
	return usecase.NewInvitationUsecase(repo, svc, "https://hire.example.com", 14)
}

func TestInviteCandidate(t *testing.T) {
	t.Run("Should require admin role", func(t *testing.T) {
		uc := newInviteUsecase(new(MockInvitationRepo))
		_, err := uc.InviteCandidate(context.Background(), "bob@example.com", "Bob")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Only admins")
	})

	t.Run("Should persist invitation with token and expiry", func(t *testing.T) {
		mockRepo := new(MockInvitationRepo)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invitation")).Return(nil)
		uc := newInviteUsecase(mockRepo)

		result, err := uc.InviteCandidate(adminCtx(), "  Bob@Example.com ", "Bob")
		assert.NoError(t, err)
		assert.Equal(t, "bob@example.com", result.Invitation.CandidateEmail)
		assert.NotEmpty(t, result.Invitation.Token)
		assert.Equal(t, domain.InvitationStatusSent, result.Invitation.Status)
		assert.True(t, result.Invitation.ExpiresAt.After(time.Now().Add(13*24*time.Hour)))
	})

	t.Run("Should not fail when email cannot be sent", func(t *testing.T) {
		mockRepo := new(MockInvitationRepo)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invitation")).Return(nil)
		uc := newInviteUsecase(mockRepo)

		result, err := uc.InviteCandidate(adminCtx(), "bob@example.com", "Bob")
		assert.NoError(t, err)
		assert.False(t, result.EmailSent)
		assert.NotEmpty(t, result.EmailError)
	})

	t.Run("Should reject blank email or name", func(t *testing.T) {
		uc := newInviteUsecase(new(MockInvitationRepo))

		_, err := uc.InviteCandidate(adminCtx(), "", "Bob")
		assert.Error(t, err)

		_, err = uc.InviteCandidate(adminCtx(), "bob@example.com", "   ")
		assert.Error(t, err)
	})
}

func TestResolveToken(t *testing.T) {
	t.Run("Should look up invitation by token without auth", func(t *testing.T) {
		mockRepo := new(MockInvitationRepo)
		mockRepo.On("GetByToken", mock.Anything, "tok-1").Return(&domain.Invitation{ID: 1, CandidateEmail: "bob@example.com"}, nil)
		uc := newInviteUsecase(mockRepo)

		inv, err := uc.ResolveToken(context.Background(), "tok-1")
		assert.NoError(t, err)
		assert.Equal(t, int64(1), inv.ID)
	})

	t.Run("Should reject empty token", func(t *testing.T) {
		uc := newInviteUsecase(new(MockInvitationRepo))
		_, err := uc.ResolveToken(context.Background(), "")
		assert.Error(t, err)
	})
}
