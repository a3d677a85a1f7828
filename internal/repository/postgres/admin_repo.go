package postgres

import (
	"context"
	"fmt"

	"go-interview-portal/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AdminRepository handles the bulk operations behind admin candidate
// deletion. Answers, progress, ratings, profile and account go in one
// transaction so a half-deleted candidate can never appear in the roster.
type AdminRepository interface {
	DeleteCandidateData(ctx context.Context, id domain.Identifier) error
}

type adminRepo struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) AdminRepository {
	return &adminRepo{db: db}
}

func (r *adminRepo) DeleteCandidateData(ctx context.Context, id domain.Identifier) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // Rollback if not committed

	key := id.Key()

	if _, err := tx.Exec(ctx, `DELETE FROM answers WHERE identifier_key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete answers: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM progress WHERE identifier_key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete progress: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM rating_notes WHERE candidate_key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete rating notes: %w", err)
	}

	// Account-backed candidates also carry a profile and a user row;
	// anonymous identifiers have neither.
	if id.Kind == domain.IdentifierAccount {
		if _, err := tx.Exec(ctx, `DELETE FROM candidate_profiles WHERE user_id = $1`, id.UserID); err != nil {
			return fmt.Errorf("failed to delete candidate profile: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id.UserID); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
