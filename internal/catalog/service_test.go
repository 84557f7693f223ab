package catalog

import (
	"context"
	"errors"
	"testing"

	"freader/internal/platform/googlebooks"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Search(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	client := NewMockClient(ctrl)
	service := NewService(client)

	t.Run("empty query", func(t *testing.T) {
		_, _, err := service.Search(context.Background(), "   ", 0)
		assert.ErrorIs(t, err, ErrEmptyQuery)
	})

	t.Run("defaults and trims", func(t *testing.T) {
		client.EXPECT().Search(gomock.Any(), "dune", DefaultMaxResults).
			Return(&googlebooks.VolumeList{TotalItems: 1, Items: []googlebooks.Volume{{ID: "a"}}}, nil)

		items, total, err := service.Search(context.Background(), "  dune ", 0)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Len(t, items, 1)
	})

	t.Run("caps max results", func(t *testing.T) {
		client.EXPECT().Search(gomock.Any(), "dune", MaxResultsLimit).Return(&googlebooks.VolumeList{}, nil)

		items, total, err := service.Search(context.Background(), "dune", 500)
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
		assert.Zero(t, total)
	})

	t.Run("keeps total without items", func(t *testing.T) {
		client.EXPECT().Search(gomock.Any(), "rare", DefaultMaxResults).
			Return(&googlebooks.VolumeList{TotalItems: 12}, nil)

		items, total, err := service.Search(context.Background(), "rare", 0)
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
		assert.Equal(t, 12, total)
	})

	t.Run("upstream error", func(t *testing.T) {
		client.EXPECT().Search(gomock.Any(), "dune", 5).Return(nil, errors.New("boom"))

		_, _, err := service.Search(context.Background(), "dune", 5)
		assert.ErrorContains(t, err, "catalog search")
	})
}

func TestService_GetVolume(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	client := NewMockClient(ctrl)
	service := NewService(client)

	_, err := service.GetVolume(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotFound)

	client.EXPECT().GetVolume(gomock.Any(), "gone").Return(nil, googlebooks.ErrNotFound)
	_, err = service.GetVolume(context.Background(), "gone")
	assert.ErrorIs(t, err, ErrNotFound)

	client.EXPECT().GetVolume(gomock.Any(), "abc").Return(&googlebooks.Volume{ID: "abc"}, nil)
	v, err := service.GetVolume(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", v.ID)
}

func TestToRow(t *testing.T) {
	row := ToRow(googlebooks.Volume{ID: "x"})
	assert.Equal(t, "Unknown Title", row.Title)
	assert.Equal(t, PlaceholderImage, row.Thumbnail)
	assert.NotNil(t, row.Authors)
	assert.NotNil(t, row.Categories)

	row = ToRow(googlebooks.Volume{ID: "y", VolumeInfo: &googlebooks.VolumeInfo{
		Title:      "Dune",
		Authors:    []string{"Frank Herbert"},
		ImageLinks: &googlebooks.ImageLinks{Thumbnail: "http://t"},
	}})
	assert.Equal(t, "Dune", row.Title)
	assert.Equal(t, "http://t", row.Thumbnail)
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "", StripHTML(""))
	assert.Equal(t, "Line one\nLine two & more", StripHTML("<p>Line one<br/>Line two &amp; <b>more</b></p>"))
	assert.Equal(t, "a\n\nb", StripHTML("a</p></p></p></p>b"))
}
