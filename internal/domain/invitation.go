package domain

import (
	"context"
	"time"
)

// Invitation status constants. Expiry is advisory: invitations are never
// automatically expired, the timestamp is only checked when a token is
// presented.
const (
	InvitationStatusSent = "sent"
)

// Invitation represents an admin-issued interview invitation for a candidate
// who may not have an account yet.
type Invitation struct {
	ID             int64     `json:"id"`
	CandidateEmail string    `json:"candidate_email"`
	CandidateName  string    `json:"candidate_name"`
	Token          string    `json:"-"`
	Status         string    `json:"status"`
	SentAt         time.Time `json:"sent_at"`
	ExpiresAt      time.Time `json:"expires_at"`
}

// Expired reports whether the advisory expiry has passed.
func (i *Invitation) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// InviteResult reports the outcome of creating an invitation. Email delivery
// is fire-and-forget: a send failure leaves the invitation persisted and is
// only surfaced for a UI toast.
type InviteResult struct {
	Invitation *Invitation `json:"invitation"`
	EmailSent  bool        `json:"email_sent"`
	EmailError string      `json:"email_error,omitempty"`
}

type InvitationRepository interface {
	Create(ctx context.Context, inv *Invitation) error
	GetByToken(ctx context.Context, token string) (*Invitation, error)
	GetByID(ctx context.Context, id int64) (*Invitation, error)
	ListAll(ctx context.Context) ([]Invitation, error)
	UpdateSentAt(ctx context.Context, id int64, sentAt time.Time) error
	Delete(ctx context.Context, id int64) error
}

type InvitationUsecase interface {
	InviteCandidate(ctx context.Context, email, name string) (*InviteResult, error)
	ResendInvitation(ctx context.Context, id int64) (*InviteResult, error)
	ResolveToken(ctx context.Context, token string) (*Invitation, error)
	ListInvitations(ctx context.Context) ([]Invitation, error)
	DeleteInvitation(ctx context.Context, id int64) error
}
