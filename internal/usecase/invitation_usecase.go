package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-interview-portal/internal/domain"
	"go-interview-portal/pkg/apperror"
	"go-interview-portal/pkg/email"
	"go-interview-portal/pkg/logger"

	"github.com/google/uuid"
)

type invitationUsecase struct {
	repo         domain.InvitationRepository
	emailService *email.EmailService
	frontendURL  string
	expiry       time.Duration
}

func NewInvitationUsecase(repo domain.InvitationRepository, emailService *email.EmailService, frontendURL string, expiryDays int) domain.InvitationUsecase {
	return &invitationUsecase{
		repo:         repo,
		emailService: emailService,
		frontendURL:  frontendURL,
		expiry:       time.Duration(expiryDays) * 24 * time.Hour,
	}
}

func requireAdmin(ctx context.Context) error {
	role, ok := ctx.Value(domain.KeyUserRole).(string)
	if !ok || role != "admin" {
		return apperror.Forbidden("Only admins can manage invitations")
	}
	return nil
}

// InviteCandidate persists the invitation first, then sends the email.
// Email delivery is fire-and-forget: a send failure never rolls back the
// invitation, it is only reported for a UI toast.
func (u *invitationUsecase) InviteCandidate(ctx context.Context, candidateEmail, name string) (*domain.InviteResult, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	candidateEmail = strings.ToLower(strings.TrimSpace(candidateEmail))
	name = strings.TrimSpace(name)
	if candidateEmail == "" {
		return nil, apperror.BadRequest("Candidate email is required")
	}
	if name == "" {
		return nil, apperror.BadRequest("Candidate name is required")
	}

	now := time.Now()
	inv := &domain.Invitation{
		CandidateEmail: candidateEmail,
		CandidateName:  name,
		Token:          uuid.NewString(),
		Status:         domain.InvitationStatusSent,
		SentAt:         now,
		ExpiresAt:      now.Add(u.expiry),
	}

	if err := u.repo.Create(ctx, inv); err != nil {
		return nil, err
	}

	return u.deliver(inv), nil
}

func (u *invitationUsecase) ResendInvitation(ctx context.Context, id int64) (*domain.InviteResult, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	inv, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result := u.deliver(inv)
	if result.EmailSent {
		now := time.Now()
		if err := u.repo.UpdateSentAt(ctx, inv.ID, now); err != nil {
			logger.Log.Error("failed to record invitation resend", "invitation_id", inv.ID, "error", err)
		} else {
			inv.SentAt = now
		}
	}
	return result, nil
}

func (u *invitationUsecase) deliver(inv *domain.Invitation) *domain.InviteResult {
	result := &domain.InviteResult{Invitation: inv}

	if !u.emailService.IsConfigured() {
		result.EmailError = "email service is not configured"
		logger.Log.Warn("invitation saved but email not sent: SMTP not configured", "invitation_id", inv.ID)
		return result
	}

	link := fmt.Sprintf("%s/interview?token=%s", u.frontendURL, inv.Token)
	err := u.emailService.SendInvitationEmail(email.InvitationEmailData{
		CandidateName:  inv.CandidateName,
		CandidateEmail: inv.CandidateEmail,
		InterviewLink:  link,
		ExpiresAt:      inv.ExpiresAt.Format("January 2, 2006"),
	})
	if err != nil {
		result.EmailError = err.Error()
		logger.Log.Error("failed to send invitation email", "invitation_id", inv.ID, "error", err)
		return result
	}

	result.EmailSent = true
	return result
}

func (u *invitationUsecase) ResolveToken(ctx context.Context, token string) (*domain.Invitation, error) {
	if token == "" {
		return nil, apperror.BadRequest("Invitation token is required")
	}
	return u.repo.GetByToken(ctx, token)
}

func (u *invitationUsecase) ListInvitations(ctx context.Context) ([]domain.Invitation, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	return u.repo.ListAll(ctx)
}

func (u *invitationUsecase) DeleteInvitation(ctx context.Context, id int64) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	return u.repo.Delete(ctx, id)
}
