package postgres

import (
	"context"
	"fmt"

	"go-interview-portal/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ratingRepo struct {
	db *pgxpool.Pool
}

func NewRatingRepository(db *pgxpool.Pool) domain.RatingRepository {
	return &ratingRepo{db: db}
}

func (r *ratingRepo) Create(ctx context.Context, note *domain.RatingNote) error {
	query := `
		INSERT INTO rating_notes (candidate_key, admin_id, section, score, note, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		note.CandidateKey, note.AdminID, string(note.Section), note.Score, note.Note,
	).Scan(&note.ID, &note.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create rating note: %w", err)
	}
	return nil
}

func (r *ratingRepo) ListByCandidate(ctx context.Context, candidateKey string) ([]domain.RatingNote, error) {
	query := `
		SELECT id, candidate_key, admin_id, section, score, note, created_at
		FROM rating_notes
		WHERE candidate_key = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, candidateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list rating notes: %w", err)
	}
	defer rows.Close()

	return scanRatingNotes(rows)
}

func (r *ratingRepo) ListAll(ctx context.Context) ([]domain.RatingNote, error) {
	query := `SELECT id, candidate_key, admin_id, section, score, note, created_at FROM rating_notes`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list rating notes: %w", err)
	}
	defer rows.Close()

	return scanRatingNotes(rows)
}

func (r *ratingRepo) DeleteByCandidate(ctx context.Context, candidateKey string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM rating_notes WHERE candidate_key = $1`, candidateKey); err != nil {
		return fmt.Errorf("failed to delete rating notes: %w", err)
	}
	return nil
}

func scanRatingNotes(rows pgx.Rows) ([]domain.RatingNote, error) {
	var results []domain.RatingNote
	for rows.Next() {
		var n domain.RatingNote
		var section string
		if err := rows.Scan(&n.ID, &n.CandidateKey, &n.AdminID, &section, &n.Score, &n.Note, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rating note row: %w", err)
		}
		n.Section = domain.Section(section)
		results = append(results, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rating note rows: %w", err)
	}
	return results, nil
}
