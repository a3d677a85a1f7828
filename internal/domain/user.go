package domain

import (
	"context"
	"time"
)

type User struct {
	ID        string    `json:"id"` // identity provider UUID
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CandidateAccount is the roster-facing account shape: the user joined with
// the display name from their profile, when one exists.
type CandidateAccount struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	ListCandidates(ctx context.Context) ([]CandidateAccount, error)
	Delete(ctx context.Context, id string) error
}

type AuthUsecase interface {
	EnsureUserExists(ctx context.Context, user *User) error
	AssignRole(ctx context.Context, userID string, role string) error
	GetCurrentUser(ctx context.Context, id string) (*User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
}
