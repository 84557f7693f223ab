package user

import (
	"context"
	"errors"
	"time"

	"freader/internal/platform/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) Create(ctx context.Context, u *User) error {
	const query = `
	INSERT INTO users (account_id, email, display_name, avatar_url, quote, profession)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, created_at, updated_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query,
		u.AccountID, u.Email, u.DisplayName, u.AvatarURL, u.Quote, u.Profession,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if postgres.IsUniqueViolation(err) {
		return ErrAlreadyExists
	}
	return err
}

func (r *PostgresRepo) GetByAccountID(ctx context.Context, accountID string) (User, error) {
	const query = `
	SELECT id, account_id, email, display_name, avatar_url, quote, profession, created_at, updated_at
	FROM users
	WHERE account_id = $1
	LIMIT 1
	`
	var u User
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, accountID).Scan(
		&u.ID, &u.AccountID, &u.Email, &u.DisplayName, &u.AvatarURL,
		&u.Quote, &u.Profession, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepo) Update(ctx context.Context, u *User) error {
	const query = `
	UPDATE users
	SET display_name = $2, avatar_url = $3, quote = $4, profession = $5, updated_at = now()
	WHERE account_id = $1
	RETURNING updated_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query,
		u.AccountID, u.DisplayName, u.AvatarURL, u.Quote, u.Profession,
	).Scan(&u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
