package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-interview-portal/internal/domain"
	"go-interview-portal/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type invitationRepo struct {
	db *pgxpool.Pool
}

func NewInvitationRepository(db *pgxpool.Pool) domain.InvitationRepository {
	return &invitationRepo{db: db}
}

func (r *invitationRepo) Create(ctx context.Context, inv *domain.Invitation) error {
	query := `
		INSERT INTO invitations (candidate_email, candidate_name, token, status, sent_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		inv.CandidateEmail, inv.CandidateName, inv.Token, inv.Status, inv.SentAt, inv.ExpiresAt,
	).Scan(&inv.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.Conflict("An invitation for this email already exists")
		}
		return fmt.Errorf("failed to create invitation: %w", err)
	}
	return nil
}

func (r *invitationRepo) GetByToken(ctx context.Context, token string) (*domain.Invitation, error) {
	query := `
		SELECT id, candidate_email, candidate_name, token, status, sent_at, expires_at
		FROM invitations
		WHERE token = $1
	`
	return r.getOne(ctx, query, token)
}

func (r *invitationRepo) GetByID(ctx context.Context, id int64) (*domain.Invitation, error) {
	query := `
		SELECT id, candidate_email, candidate_name, token, status, sent_at, expires_at
		FROM invitations
		WHERE id = $1
	`
	return r.getOne(ctx, query, id)
}

func (r *invitationRepo) getOne(ctx context.Context, query string, arg any) (*domain.Invitation, error) {
	var inv domain.Invitation
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&inv.ID, &inv.CandidateEmail, &inv.CandidateName, &inv.Token, &inv.Status, &inv.SentAt, &inv.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("Invitation not found")
		}
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}
	return &inv, nil
}

func (r *invitationRepo) ListAll(ctx context.Context) ([]domain.Invitation, error) {
	query := `
		SELECT id, candidate_email, candidate_name, token, status, sent_at, expires_at
		FROM invitations
		ORDER BY sent_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	defer rows.Close()

	var results []domain.Invitation
	for rows.Next() {
		var inv domain.Invitation
		if err := rows.Scan(&inv.ID, &inv.CandidateEmail, &inv.CandidateName, &inv.Token, &inv.Status, &inv.SentAt, &inv.ExpiresAt); err != nil {
			return nil, fmt.Errorf("failed to scan invitation row: %w", err)
		}
		results = append(results, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invitation rows: %w", err)
	}
	return results, nil
}

func (r *invitationRepo) UpdateSentAt(ctx context.Context, id int64, sentAt time.Time) error {
	tag, err := r.db.Exec(ctx, `UPDATE invitations SET sent_at = $2 WHERE id = $1`, id, sentAt)
	if err != nil {
		return fmt.Errorf("failed to update invitation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("Invitation not found")
	}
	return nil
}

func (r *invitationRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM invitations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete invitation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("Invitation not found")
	}
	return nil
}
