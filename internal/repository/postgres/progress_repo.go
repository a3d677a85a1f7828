package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-interview-portal/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type progressRepo struct {
	db *pgxpool.Pool
}

func NewProgressRepository(db *pgxpool.Pool) domain.ProgressRepository {
	return &progressRepo{db: db}
}

func (r *progressRepo) GetByIdentifier(ctx context.Context, id domain.Identifier) (*domain.Progress, error) {
	query := `
		SELECT identifier_key, current_step, completed_sections, submission_status, submitted_at, updated_at
		FROM progress
		WHERE identifier_key = $1
	`

	p, err := scanProgress(r.db.QueryRow(ctx, query, id.Key()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Absence is not an error: no record means the wizard was never
			// started under this identifier.
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return p, nil
}

// Upsert writes the progress record. The guard on the update arm keeps the
// completed transition one-way: a completed record is only overwritten by
// another completed record.
func (r *progressRepo) Upsert(ctx context.Context, id domain.Identifier, progress *domain.Progress) error {
	var sections []byte
	if progress.CompletedSections != nil {
		var err error
		sections, err = json.Marshal(progress.CompletedSections)
		if err != nil {
			return fmt.Errorf("failed to encode completed sections: %w", err)
		}
	}

	query := `
		INSERT INTO progress (identifier_key, current_step, completed_sections, submission_status, submitted_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (identifier_key)
		DO UPDATE SET
			current_step = EXCLUDED.current_step,
			completed_sections = EXCLUDED.completed_sections,
			submission_status = EXCLUDED.submission_status,
			submitted_at = EXCLUDED.submitted_at,
			updated_at = NOW()
		WHERE progress.submission_status <> 'completed'
		   OR EXCLUDED.submission_status = 'completed'
	`

	_, err := r.db.Exec(ctx, query,
		id.Key(), progress.CurrentStep, sections, string(progress.SubmissionStatus), progress.SubmittedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert progress: %w", err)
	}
	return nil
}

func (r *progressRepo) ListAll(ctx context.Context) ([]domain.Progress, error) {
	query := `
		SELECT identifier_key, current_step, completed_sections, submission_status, submitted_at, updated_at
		FROM progress
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress records: %w", err)
	}
	defer rows.Close()

	var results []domain.Progress
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan progress row: %w", err)
		}
		results = append(results, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating progress rows: %w", err)
	}
	return results, nil
}

func (r *progressRepo) DeleteByIdentifier(ctx context.Context, id domain.Identifier) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM progress WHERE identifier_key = $1`, id.Key()); err != nil {
		return fmt.Errorf("failed to delete progress: %w", err)
	}
	return nil
}

func scanProgress(row pgx.Row) (*domain.Progress, error) {
	var p domain.Progress
	var status string
	var sections []byte

	if err := row.Scan(&p.IdentifierKey, &p.CurrentStep, &sections, &status, &p.SubmittedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if len(sections) > 0 {
		if err := json.Unmarshal(sections, &p.CompletedSections); err != nil {
			return nil, fmt.Errorf("failed to decode completed sections: %w", err)
		}
	}
	p.SubmissionStatus = domain.SubmissionStatus(status)
	return &p, nil
}
