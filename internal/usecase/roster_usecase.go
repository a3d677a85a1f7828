package usecase

import (
	"context"
	"sort"
	"strings"

	"go-interview-portal/internal/domain"
	"go-interview-portal/internal/repository/postgres"
	"go-interview-portal/pkg/apperror"
	"go-interview-portal/pkg/logger"
)

type rosterUsecase struct {
	userRepo       domain.UserRepository
	invitationRepo domain.InvitationRepository
	progressRepo   domain.ProgressRepository
	ratingRepo     domain.RatingRepository
	adminRepo      postgres.AdminRepository
}

func NewRosterUsecase(
	userRepo domain.UserRepository,
	invitationRepo domain.InvitationRepository,
	progressRepo domain.ProgressRepository,
	ratingRepo domain.RatingRepository,
	adminRepo postgres.AdminRepository,
) domain.RosterUsecase {
	return &rosterUsecase{
		userRepo:       userRepo,
		invitationRepo: invitationRepo,
		progressRepo:   progressRepo,
		ratingRepo:     ratingRepo,
		adminRepo:      adminRepo,
	}
}

// BuildRoster merges candidate accounts, outstanding invitations and progress
// records into one deduplicated roster. Each source is fetched fresh on every
// call; a failing source contributes nothing but does not abort the build.
func (u *rosterUsecase) BuildRoster(ctx context.Context) (*domain.RosterResult, error) {
	ctxRole, ok := ctx.Value(domain.KeyUserRole).(string)
	if !ok || ctxRole != "admin" {
		return nil, apperror.Forbidden("Only admins can view the roster")
	}

	result := &domain.RosterResult{}

	accounts, err := u.userRepo.ListCandidates(ctx)
	if err != nil {
		logger.Log.Error("roster: accounts source failed", "error", err)
		result.Warnings = append(result.Warnings, "candidate accounts unavailable")
		accounts = nil
	}

	invitations, err := u.invitationRepo.ListAll(ctx)
	if err != nil {
		logger.Log.Error("roster: invitations source failed", "error", err)
		result.Warnings = append(result.Warnings, "invitations unavailable")
		invitations = nil
	}

	progressByKey := make(map[string]domain.Progress)
	progressRecords, err := u.progressRepo.ListAll(ctx)
	if err != nil {
		logger.Log.Error("roster: progress source failed", "error", err)
		result.Warnings = append(result.Warnings, "progress records unavailable")
	} else {
		for _, p := range progressRecords {
			progressByKey[p.IdentifierKey] = p
		}
	}

	// Ratings are optional enrichment: without them every score is null.
	scoresByKey := make(map[string]*float64)
	ratings, err := u.ratingRepo.ListAll(ctx)
	if err != nil {
		logger.Log.Error("roster: ratings source failed", "error", err)
		result.Warnings = append(result.Warnings, "admin ratings unavailable")
	} else {
		scoresByKey = averageScores(ratings)
	}

	accountEmails := make(map[string]bool, len(accounts))

	for _, acct := range accounts {
		accountEmails[strings.ToLower(acct.Email)] = true

		entry := domain.RosterEntry{
			Kind:             domain.RosterRowAccount,
			AccountID:        acct.UserID,
			Name:             acct.Name,
			Email:            acct.Email,
			SubmissionStatus: domain.StatusNotStarted,
			DateSubmitted:    acct.CreatedAt,
			OverallScore:     scoresByKey[acct.UserID],
		}
		if entry.Name == "" {
			entry.Name = acct.Email
		}
		if p, found := progressByKey[acct.UserID]; found {
			entry.SubmissionStatus = p.SubmissionStatus
			if p.SubmittedAt != nil {
				entry.DateSubmitted = *p.SubmittedAt
			}
		}
		result.Entries = append(result.Entries, entry)
	}

	for _, inv := range invitations {
		// An account with the same email already represents this human.
		if accountEmails[strings.ToLower(inv.CandidateEmail)] {
			continue
		}

		anonKey := domain.AnonymousIdentifier(inv.CandidateEmail).Key()
		entry := domain.RosterEntry{
			Kind:             domain.RosterRowInvitation,
			InvitationID:     inv.ID,
			Name:             inv.CandidateName,
			Email:            inv.CandidateEmail,
			SubmissionStatus: domain.StatusInvited,
			DateSubmitted:    inv.SentAt,
			OverallScore:     scoresByKey[anonKey],
		}
		// An invitee who already started answering anonymously shows their
		// real progress instead of a bare "invited".
		if p, found := progressByKey[anonKey]; found {
			entry.SubmissionStatus = p.SubmissionStatus
			if p.SubmittedAt != nil {
				entry.DateSubmitted = *p.SubmittedAt
			}
		}
		result.Entries = append(result.Entries, entry)
	}

	sort.SliceStable(result.Entries, func(i, j int) bool {
		return result.Entries[i].DateSubmitted.After(result.Entries[j].DateSubmitted)
	})

	return result, nil
}

// DeleteCandidate removes a roster row. The row kind picks the path: account
// rows drop all stored candidate data in one transaction, invitation rows
// just revoke the invitation.
func (u *rosterUsecase) DeleteCandidate(ctx context.Context, entry domain.RosterEntry) error {
	ctxRole, ok := ctx.Value(domain.KeyUserRole).(string)
	if !ok || ctxRole != "admin" {
		return apperror.Forbidden("Only admins can delete candidates")
	}

	switch entry.Kind {
	case domain.RosterRowAccount:
		if entry.AccountID == "" {
			return apperror.BadRequest("Account id is required")
		}
		return u.adminRepo.DeleteCandidateData(ctx, domain.AccountIdentifier(entry.AccountID))
	case domain.RosterRowInvitation:
		if entry.InvitationID == 0 {
			return apperror.BadRequest("Invitation id is required")
		}
		// Any answers an invitee left behind go with the invitation.
		if entry.Email != "" {
			anon := domain.AnonymousIdentifier(entry.Email)
			if err := u.adminRepo.DeleteCandidateData(ctx, anon); err != nil {
				return err
			}
		}
		return u.invitationRepo.Delete(ctx, entry.InvitationID)
	default:
		return apperror.BadRequest("Unknown roster row kind")
	}
}

// averageScores computes the arithmetic mean of each candidate's ratings.
// No weighting, no recency decay.
func averageScores(ratings []domain.RatingNote) map[string]*float64 {
	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, r := range ratings {
		sums[r.CandidateKey] += r.Score
		counts[r.CandidateKey]++
	}

	scores := make(map[string]*float64, len(sums))
	for key, sum := range sums {
		mean := float64(sum) / float64(counts[key])
		scores[key] = &mean
	}
	return scores
}
