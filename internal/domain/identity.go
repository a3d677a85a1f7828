package domain

import (
	"context"
	"strings"
)

// IdentifierKind distinguishes authenticated accounts from token-invited
// anonymous candidates.
type IdentifierKind string

const (
	IdentifierAccount   IdentifierKind = "account"
	IdentifierAnonymous IdentifierKind = "anonymous"
)

// Identifier is the single key under which a candidate's answers and progress
// are partitioned. Exactly one kind is active per session. An account
// identifier and an email identifier for the same human are never merged by
// the store; merging happens read-side in the roster aggregator only.
type Identifier struct {
	Kind   IdentifierKind `json:"kind"`
	UserID string         `json:"user_id,omitempty"`
	Email  string         `json:"email,omitempty"`
}

func AccountIdentifier(userID string) Identifier {
	return Identifier{Kind: IdentifierAccount, UserID: userID}
}

func AnonymousIdentifier(email string) Identifier {
	return Identifier{Kind: IdentifierAnonymous, Email: strings.ToLower(strings.TrimSpace(email))}
}

// Key returns the storage partition key. Anonymous keys carry a prefix so the
// two keyspaces stay disjoint even if a user id ever collides with an email.
func (i Identifier) Key() string {
	if i.Kind == IdentifierAnonymous {
		return "email:" + i.Email
	}
	return i.UserID
}

func (i Identifier) IsZero() bool {
	return i.Kind == "" || (i.UserID == "" && i.Email == "")
}

// AuthSession is what the external identity provider gives us for an
// authenticated request: the subject id and the account email from the token.
type AuthSession struct {
	UserID string
	Email  string
}

// IdentityResolver produces exactly one Identifier for the current actor.
// An authenticated session takes priority over an invitation token.
type IdentityResolver interface {
	Resolve(ctx context.Context, session *AuthSession, inviteToken string) (Identifier, error)
}
