package postgres

import (
	"context"
	"errors"
	"fmt"

	"go-interview-portal/internal/domain"
	"go-interview-portal/pkg/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (id, email, role, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Exec(ctx, query, user.ID, user.Email, user.Role, user.CreatedAt, user.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.Conflict("User with this email already exists")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT id, email, role, created_at, updated_at FROM users WHERE id = $1`
	var user domain.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, email, role, created_at, updated_at FROM users WHERE LOWER(email) = LOWER($1)`
	var user domain.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	query := `UPDATE users SET email = $2, role = $3, updated_at = $4 WHERE id = $1`
	_, err := r.db.Exec(ctx, query, user.ID, user.Email, user.Role, user.UpdatedAt)
	return err
}

// ListCandidates returns every candidate account joined with its profile
// display name when one exists. This is one of the three roster sources.
func (r *userRepo) ListCandidates(ctx context.Context) ([]domain.CandidateAccount, error) {
	query := `
		SELECT u.id, u.email, COALESCE(cp.full_name, ''), u.created_at
		FROM users u
		LEFT JOIN candidate_profiles cp ON cp.user_id = u.id
		WHERE u.role = 'candidate'
		ORDER BY u.created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate accounts: %w", err)
	}
	defer rows.Close()

	var results []domain.CandidateAccount
	for rows.Next() {
		var acct domain.CandidateAccount
		if err := rows.Scan(&acct.UserID, &acct.Email, &acct.Name, &acct.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan candidate account row: %w", err)
		}
		results = append(results, acct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating candidate account rows: %w", err)
	}
	return results, nil
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("User not found")
	}
	return nil
}
