package library

import (
	"context"
	"testing"
	"time"

	"freader/internal/testutil"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createAccount(t *testing.T, db *pgxpool.Pool, email string) string {
	t.Helper()
	var id string
	err := db.QueryRow(context.Background(),
		`INSERT INTO accounts (email, password_hash) VALUES ($1, 'x') RETURNING id`, email).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestPostgresRepo_Lifecycle(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewPostgresRepo(db, 3*time.Second)
	ctx := context.Background()
	owner := createAccount(t, db, "owner@example.com")
	other := createAccount(t, db, "other@example.com")

	b := FromVolume(owner, *testVolume())
	require.NoError(t, repo.Create(ctx, &b))
	require.NotEmpty(t, b.ID)

	dup := FromVolume(owner, *testVolume())
	assert.ErrorIs(t, repo.Create(ctx, &dup), ErrAlreadySaved)

	got, err := repo.GetByGoogleID(ctx, owner, "zyTCAlFPjgYC")
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
	assert.Equal(t, "207", got.PageCount)

	_, err = repo.GetByID(ctx, other, b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetByID(ctx, owner, "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)

	now := time.Now().UTC().Truncate(time.Microsecond)
	got.Rating = 4.5
	got.StartedReading = &now
	require.NoError(t, repo.Update(ctx, &got))

	reloaded, err := repo.GetByID(ctx, owner, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.5, reloaded.Rating)
	require.NotNil(t, reloaded.StartedReading)
	assert.True(t, now.Equal(*reloaded.StartedReading))
	assert.Nil(t, reloaded.FinishedReading)

	books, total, err := repo.List(ctx, owner, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, books, 1)

	books, total, err = repo.List(ctx, other, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, books)

	assert.ErrorIs(t, repo.Delete(ctx, other, b.ID), ErrNotFound)
	require.NoError(t, repo.Delete(ctx, owner, b.ID))
	assert.ErrorIs(t, repo.Delete(ctx, owner, b.ID), ErrNotFound)
}
