package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-interview-portal/internal/domain"
	"go-interview-portal/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestIdentityResolution(t *testing.T) {
	t.Run("Should resolve authenticated session to account identifier", func(t *testing.T) {
		mockRepo := new(MockInvitationRepo)
		resolver := usecase.NewIdentityResolver(mockRepo)

		session := &domain.AuthSession{UserID: "user1", Email: "user1@example.com"}
		id, err := resolver.Resolve(context.Background(), session, "")
		assert.NoError(t, err)
		assert.Equal(t, domain.IdentifierAccount, id.Kind)
		assert.Equal(t, "user1", id.Key())
	})

	t.Run("Should prefer session over invitation token", func(t *testing.T) {
		mockRepo := new(MockInvitationRepo)
		resolver := usecase.NewIdentityResolver(mockRepo)

		session := &domain.AuthSession{UserID: "user1"}
		id, err := resolver.Resolve(context.Background(), session, "some-token")
		assert.NoError(t, err)
		assert.Equal(t, domain.IdentifierAccount, id.Kind)
		mockRepo.AssertNotCalled(t, "GetByToken")
	})

	t.Run("Should resolve invitation token to anonymous identifier", func(t *testing.T) {
		mockRepo := new(MockInvitationRepo)
		mockRepo.On("GetByToken", context.Background(), "tok-123").Return(&domain.Invitation{
			ID:             7,
			CandidateEmail: "Invitee@Example.COM",
			ExpiresAt:      time.Now().Add(24 * time.Hour),
		}, nil)
		resolver := usecase.NewIdentityResolver(mockRepo)

		id, err := resolver.Resolve(context.Background(), nil, "tok-123")
		assert.NoError(t, err)
		assert.Equal(t, domain.IdentifierAnonymous, id.Kind)
		assert.Equal(t, "email:invitee@example.com", id.Key())
	})

	t.Run("Should still resolve an expired token", func(t *testing.T) {
		mockRepo := new(MockInvitationRepo)
		mockRepo.On("GetByToken", context.Background(), "tok-old").Return(&domain.Invitation{
			ID:             8,
			CandidateEmail: "late@example.com",
			ExpiresAt:      time.Now().Add(-48 * time.Hour),
		}, nil)
		resolver := usecase.NewIdentityResolver(mockRepo)

		id, err := resolver.Resolve(context.Background(), nil, "tok-old")
		assert.NoError(t, err)
		assert.Equal(t, "email:late@example.com", id.Key())
	})

	t.Run("Should reject unknown token", func(t *testing.T) {
		mockRepo := new(MockInvitationRepo)
		mockRepo.On("GetByToken", context.Background(), "bogus").Return(nil, errors.New("no rows in result set"))
		resolver := usecase.NewIdentityResolver(mockRepo)

		_, err := resolver.Resolve(context.Background(), nil, "bogus")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid invitation token")
	})

	t.Run("Should reject request with neither session nor token", func(t *testing.T) {
		mockRepo := new(MockInvitationRepo)
		resolver := usecase.NewIdentityResolver(mockRepo)

		_, err := resolver.Resolve(context.Background(), nil, "")
		assert.Error(t, err)
	})
}
