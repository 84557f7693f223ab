package user

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayNameFromEmail(t *testing.T) {
	assert.Equal(t, "reader", DisplayNameFromEmail("reader@example.com"))
	assert.Equal(t, "reader", DisplayNameFromEmail("  reader@example.com "))
	assert.Equal(t, "nodomain", DisplayNameFromEmail("nodomain"))
}

func TestService_CreateForAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := NewMockRepository(ctrl)
	service := NewService(repo, DefaultProfile)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *User) error {
		u.ID = "doc-1"
		return nil
	})

	u, err := service.CreateForAccount(context.Background(), "acc-1", "jane.doe@example.com")
	require.NoError(t, err)
	assert.Equal(t, "doc-1", u.ID)
	assert.Equal(t, "acc-1", u.AccountID)
	assert.Equal(t, "jane.doe", u.DisplayName)
	assert.Equal(t, "", u.AvatarURL)
	assert.Equal(t, "Life is great", u.Quote)
	assert.Equal(t, "Android Developer", u.Profession)
}

func TestService_Ensure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := NewMockRepository(ctrl)
	service := NewService(repo, DefaultProfile)
	ctx := context.Background()

	t.Run("existing", func(t *testing.T) {
		repo.EXPECT().GetByAccountID(ctx, "acc-1").Return(User{ID: "doc-1"}, nil)

		u, err := service.Ensure(ctx, "acc-1", "a@b.io")
		require.NoError(t, err)
		assert.Equal(t, "doc-1", u.ID)
	})

	t.Run("missing is created", func(t *testing.T) {
		repo.EXPECT().GetByAccountID(ctx, "acc-2").Return(User{}, ErrNotFound)
		repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		u, err := service.Ensure(ctx, "acc-2", "sam@b.io")
		require.NoError(t, err)
		assert.Equal(t, "sam", u.DisplayName)
	})

	t.Run("store failure", func(t *testing.T) {
		repo.EXPECT().GetByAccountID(ctx, "acc-3").Return(User{}, errors.New("db down"))

		_, err := service.Ensure(ctx, "acc-3", "x@b.io")
		assert.Error(t, err)
	})
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := NewMockRepository(ctrl)
	service := NewService(repo, DefaultProfile)
	ctx := context.Background()
	stored := User{AccountID: "acc-1", DisplayName: "reader", Quote: "Life is great"}

	t.Run("unchanged skips write", func(t *testing.T) {
		repo.EXPECT().GetByAccountID(ctx, "acc-1").Return(stored, nil)
		same := "reader"

		u, err := service.Update(ctx, "acc-1", UpdateCommand{DisplayName: &same})
		require.NoError(t, err)
		assert.Equal(t, stored, u)
	})

	t.Run("changed writes", func(t *testing.T) {
		repo.EXPECT().GetByAccountID(ctx, "acc-1").Return(stored, nil)
		repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)
		quote := "So many books"

		u, err := service.Update(ctx, "acc-1", UpdateCommand{Quote: &quote})
		require.NoError(t, err)
		assert.Equal(t, "So many books", u.Quote)
		assert.Equal(t, "reader", u.DisplayName)
	})

	t.Run("not found", func(t *testing.T) {
		repo.EXPECT().GetByAccountID(ctx, "nobody").Return(User{}, ErrNotFound)

		_, err := service.Update(ctx, "nobody", UpdateCommand{})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
