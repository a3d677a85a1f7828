package usecase

import (
	"context"
	"time"

	"go-interview-portal/internal/domain"
	"go-interview-portal/pkg/apperror"
	"go-interview-portal/pkg/logger"
)

type identityResolver struct {
	invitationRepo domain.InvitationRepository
}

func NewIdentityResolver(invitationRepo domain.InvitationRepository) domain.IdentityResolver {
	return &identityResolver{invitationRepo: invitationRepo}
}

// Resolve picks exactly one identifier for the current actor. An
// authenticated session always wins over an invitation token; with neither
// present the caller must redirect to registration.
func (r *identityResolver) Resolve(ctx context.Context, session *domain.AuthSession, inviteToken string) (domain.Identifier, error) {
	if session != nil && session.UserID != "" {
		return domain.AccountIdentifier(session.UserID), nil
	}

	if inviteToken != "" {
		inv, err := r.invitationRepo.GetByToken(ctx, inviteToken)
		if err != nil {
			return domain.Identifier{}, apperror.Unauthorized("Invalid invitation token")
		}
		// Expiry is advisory: log it, but let the candidate continue.
		if inv.Expired(time.Now()) {
			logger.Log.Warn("invitation token past advisory expiry",
				"invitation_id", inv.ID, "expires_at", inv.ExpiresAt)
		}
		return domain.AnonymousIdentifier(inv.CandidateEmail), nil
	}

	return domain.Identifier{}, apperror.Unauthorized("No usable identity: sign in or open your invitation link")
}
