package postgres

import (
	"context"
	"fmt"
	"time"

	"go-interview-portal/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type answerRepo struct {
	db *pgxpool.Pool
}

func NewAnswerRepository(db *pgxpool.Pool) domain.AnswerRepository {
	return &answerRepo{db: db}
}

// Save upserts one answer tuple. The primary key is
// (identifier_key, section, question_key), so repeated saves of the same
// tuple are idempotent and concurrent saves of different keys never conflict.
func (r *answerRepo) Save(ctx context.Context, id domain.Identifier, section domain.Section, questionKey string, value domain.AnswerValue) error {
	payload, err := value.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode answer value: %w", err)
	}

	query := `
		INSERT INTO answers (identifier_key, section, question_key, value, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (identifier_key, section, question_key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	if _, err := r.db.Exec(ctx, query, id.Key(), string(section), questionKey, payload); err != nil {
		return fmt.Errorf("failed to save answer %s/%s: %w", section, questionKey, err)
	}
	return nil
}

func (r *answerRepo) ListByIdentifier(ctx context.Context, id domain.Identifier) ([]domain.Answer, error) {
	query := `
		SELECT identifier_key, section, question_key, value, updated_at
		FROM answers
		WHERE identifier_key = $1
	`

	rows, err := r.db.Query(ctx, query, id.Key())
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}
	defer rows.Close()

	return scanAnswers(rows)
}

func (r *answerRepo) ListAll(ctx context.Context) ([]domain.Answer, error) {
	query := `SELECT identifier_key, section, question_key, value, updated_at FROM answers`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}
	defer rows.Close()

	return scanAnswers(rows)
}

func (r *answerRepo) DeleteByIdentifier(ctx context.Context, id domain.Identifier) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM answers WHERE identifier_key = $1`, id.Key()); err != nil {
		return fmt.Errorf("failed to delete answers: %w", err)
	}
	return nil
}

func scanAnswers(rows pgx.Rows) ([]domain.Answer, error) {
	var results []domain.Answer
	for rows.Next() {
		var a domain.Answer
		var section string
		var raw []byte
		var updatedAt time.Time
		if err := rows.Scan(&a.IdentifierKey, &section, &a.QuestionKey, &raw, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan answer row: %w", err)
		}
		if err := a.Value.UnmarshalJSON(raw); err != nil {
			return nil, fmt.Errorf("failed to decode answer %s/%s: %w", section, a.QuestionKey, err)
		}
		a.Section = domain.Section(section)
		a.UpdatedAt = updatedAt
		results = append(results, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating answer rows: %w", err)
	}
	return results, nil
}
