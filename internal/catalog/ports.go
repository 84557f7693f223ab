package catalog

import (
	"context"

	"freader/internal/platform/googlebooks"
)

// Client is the upstream catalog.
type Client interface {
	Search(ctx context.Context, query string, maxResults int) (*googlebooks.VolumeList, error)
	GetVolume(ctx context.Context, id string) (*googlebooks.Volume, error)
}
