package user

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByAccountID(ctx context.Context, accountID string) (User, error)
	Update(ctx context.Context, u *User) error
}
