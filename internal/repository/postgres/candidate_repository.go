package postgres

import (
	"context"
	"errors"
	"fmt"

	"go-interview-portal/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type candidateRepository struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) GetByUserID(ctx context.Context, userID string) (*domain.CandidateProfile, error) {
	query := `
		SELECT id, user_id, full_name, COALESCE(phone, ''), skills, created_at, updated_at
		FROM candidate_profiles WHERE user_id = $1`

	var p domain.CandidateProfile
	var skills []string

	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.FullName, &p.Phone,
		pq.Array(&skills), &p.CreatedAt, &p.UpdatedAt,
	)
	p.Skills = skills

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *candidateRepository) Create(ctx context.Context, profile *domain.CandidateProfile) error {
	query := `
		INSERT INTO candidate_profiles (user_id, full_name, phone, skills, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		profile.UserID, profile.FullName, profile.Phone, pq.Array(profile.Skills),
	).Scan(&profile.ID)
	if err != nil {
		return fmt.Errorf("failed to create candidate profile: %w", err)
	}
	return nil
}

func (r *candidateRepository) Update(ctx context.Context, profile *domain.CandidateProfile) error {
	query := `
		UPDATE candidate_profiles
		SET full_name = $2, phone = $3, skills = $4, updated_at = NOW()
		WHERE user_id = $1`

	tag, err := r.db.Exec(ctx, query,
		profile.UserID, profile.FullName, profile.Phone, pq.Array(profile.Skills))
	if err != nil {
		return fmt.Errorf("failed to update candidate profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Upsert behavior: first save creates the profile
		return r.Create(ctx, profile)
	}
	return nil
}

func (r *candidateRepository) DeleteByUserID(ctx context.Context, userID string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM candidate_profiles WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete candidate profile: %w", err)
	}
	return nil
}
