package auth

import (
	"context"
	"errors"
	"time"

	"freader/internal/platform/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AccountPostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewAccountPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *AccountPostgresRepo {
	return &AccountPostgresRepo{db: db, timeout: timeout}
}

func (r *AccountPostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *AccountPostgresRepo) Create(ctx context.Context, a *Account) error {
	const query = `
	INSERT INTO accounts (email, password_hash)
	VALUES ($1, $2)
	RETURNING id, created_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, a.Email, a.PasswordHash).Scan(&a.ID, &a.CreatedAt)
	if postgres.IsUniqueViolation(err) {
		return ErrAlreadyExists
	}
	return err
}

func (r *AccountPostgresRepo) GetByEmail(ctx context.Context, email string) (Account, error) {
	const query = `
	SELECT id, email, password_hash, created_at
	FROM accounts
	WHERE lower(email) = lower($1)
	LIMIT 1
	`
	var a Account
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, email).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		return Account{}, err
	}
	return a, nil
}

type BlacklistPostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewBlacklistPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *BlacklistPostgresRepo {
	return &BlacklistPostgresRepo{db: db, timeout: timeout}
}

func (r *BlacklistPostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *BlacklistPostgresRepo) Add(ctx context.Context, jti, accountID string, expiresAt time.Time) error {
	const query = `
	INSERT INTO token_blacklist (jti, account_id, expires_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (jti) DO NOTHING
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(timeoutCtx, query, jti, accountID, expiresAt)
	return err
}

func (r *BlacklistPostgresRepo) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM token_blacklist WHERE jti = $1 AND expires_at > now())`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var exists bool
	err := r.db.QueryRow(timeoutCtx, query, jti).Scan(&exists)
	return exists, err
}

func (r *BlacklistPostgresRepo) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	const query = `DELETE FROM token_blacklist WHERE expires_at < $1`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, query, before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
