package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"freader/internal/platform/googlebooks"
)

// Service forwards catalog lookups to the upstream client.
type Service struct {
	client Client
}

func NewService(client Client) *Service {
	return &Service{client: client}
}

// Search returns the matching volumes (never nil) and the upstream total.
func (s *Service) Search(ctx context.Context, query string, maxResults int) ([]googlebooks.Volume, int, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, 0, ErrEmptyQuery
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	if maxResults > MaxResultsLimit {
		maxResults = MaxResultsLimit
	}

	res, err := s.client.Search(ctx, query, maxResults)
	if err != nil {
		return nil, 0, fmt.Errorf("catalog search: %w", err)
	}
	if res == nil {
		return []googlebooks.Volume{}, 0, nil
	}
	if res.Items == nil {
		return []googlebooks.Volume{}, res.TotalItems, nil
	}
	return res.Items, res.TotalItems, nil
}

func (s *Service) GetVolume(ctx context.Context, id string) (*googlebooks.Volume, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNotFound
	}
	v, err := s.client.GetVolume(ctx, id)
	if err != nil {
		if errors.Is(err, googlebooks.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("catalog volume %s: %w", id, err)
	}
	return v, nil
}
