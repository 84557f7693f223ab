package auth

import (
	"context"
	"testing"
	"time"

	"freader/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountPostgresRepo(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewAccountPostgresRepo(db, 3*time.Second)
	ctx := context.Background()

	a := &Account{Email: "jane@example.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, a))
	require.NotEmpty(t, a.ID)

	assert.ErrorIs(t, repo.Create(ctx, &Account{Email: "JANE@example.com", PasswordHash: "hash"}), ErrAlreadyExists)

	got, err := repo.GetByEmail(ctx, "Jane@Example.com")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = repo.GetByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBlacklistPostgresRepo(t *testing.T) {
	db := testutil.OpenTestDB(t)
	accounts := NewAccountPostgresRepo(db, 3*time.Second)
	repo := NewBlacklistPostgresRepo(db, 3*time.Second)
	ctx := context.Background()

	a := &Account{Email: "jane@example.com", PasswordHash: "hash"}
	require.NoError(t, accounts.Create(ctx, a))

	require.NoError(t, repo.Add(ctx, "live", a.ID, time.Now().Add(time.Hour)))
	require.NoError(t, repo.Add(ctx, "live", a.ID, time.Now().Add(time.Hour)))
	require.NoError(t, repo.Add(ctx, "stale", a.ID, time.Now().Add(-time.Hour)))

	revoked, err := repo.IsBlacklisted(ctx, "live")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = repo.IsBlacklisted(ctx, "stale")
	require.NoError(t, err)
	assert.False(t, revoked)

	n, err := repo.DeleteExpired(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
