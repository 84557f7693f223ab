package library

import (
	"context"

	"freader/internal/platform/googlebooks"
)

type Repository interface {
	Create(ctx context.Context, b *Book) error
	List(ctx context.Context, userID string, limit, offset int) ([]Book, int, error)
	GetByID(ctx context.Context, userID, id string) (Book, error)
	GetByGoogleID(ctx context.Context, userID, googleBookID string) (Book, error)
	Update(ctx context.Context, b *Book) error
	Delete(ctx context.Context, userID, id string) error
}

// VolumeFetcher resolves a catalog volume; catalog.Service satisfies it.
type VolumeFetcher interface {
	GetVolume(ctx context.Context, id string) (*googlebooks.Volume, error)
}
