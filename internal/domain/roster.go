package domain

import (
	"context"
	"time"
)

// RosterRowKind distinguishes rows backed by real accounts from rows standing
// in for not-yet-registered invitees. Consumers branch on the kind to pick
// the right deletion or reminder path.
type RosterRowKind string

const (
	RosterRowAccount    RosterRowKind = "account"
	RosterRowInvitation RosterRowKind = "invitation"
)

// RosterEntry is one derived row per distinct human. It is never stored.
type RosterEntry struct {
	Kind             RosterRowKind    `json:"kind"`
	AccountID        string           `json:"account_id,omitempty"`
	InvitationID     int64            `json:"invitation_id,omitempty"`
	Name             string           `json:"name"`
	Email            string           `json:"email"`
	SubmissionStatus SubmissionStatus `json:"submission_status"`
	DateSubmitted    time.Time        `json:"date_submitted"`
	OverallScore     *float64         `json:"overall_score"`
}

// RosterResult carries the merged roster plus non-blocking warnings for any
// source that failed to load.
type RosterResult struct {
	Entries  []RosterEntry `json:"entries"`
	Warnings []string      `json:"warnings,omitempty"`
}

type RosterUsecase interface {
	BuildRoster(ctx context.Context) (*RosterResult, error)
	DeleteCandidate(ctx context.Context, entry RosterEntry) error
}
