package auth

import (
	"context"
	"time"

	"freader/internal/user"
)

type AccountRepository interface {
	Create(ctx context.Context, a *Account) error
	GetByEmail(ctx context.Context, email string) (Account, error)
}

type BlacklistRepository interface {
	Add(ctx context.Context, jti, accountID string, expiresAt time.Time) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// ProfileCreator writes the user document of a new account.
type ProfileCreator interface {
	CreateForAccount(ctx context.Context, accountID, email string) (user.User, error)
}
