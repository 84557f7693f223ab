package library

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"freader/internal/catalog"
)

type Service struct {
	repo    Repository
	volumes VolumeFetcher
	now     func() time.Time
}

func NewService(repo Repository, volumes VolumeFetcher) *Service {
	return &Service{repo: repo, volumes: volumes, now: time.Now}
}

// Save copies the catalog volume googleBookID into userID's library.
func (s *Service) Save(ctx context.Context, userID, googleBookID string) (Book, error) {
	googleBookID = strings.TrimSpace(googleBookID)
	if googleBookID == "" {
		return Book{}, ErrVolumeNotFound
	}

	if _, err := s.repo.GetByGoogleID(ctx, userID, googleBookID); err == nil {
		return Book{}, ErrAlreadySaved
	} else if !errors.Is(err, ErrNotFound) {
		return Book{}, err
	}

	v, err := s.volumes.GetVolume(ctx, googleBookID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return Book{}, ErrVolumeNotFound
		}
		return Book{}, fmt.Errorf("fetch volume: %w", err)
	}

	b := FromVolume(userID, *v)
	if err := s.repo.Create(ctx, &b); err != nil {
		return Book{}, err
	}
	return b, nil
}

// List pages through userID's books, newest first. A zero limit returns all.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Book, int, error) {
	books, total, err := s.repo.List(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	if books == nil {
		books = []Book{}
	}
	return books, total, nil
}

// All returns every book userID has saved.
func (s *Service) All(ctx context.Context, userID string) ([]Book, error) {
	books, _, err := s.List(ctx, userID, 0, 0)
	return books, err
}

func (s *Service) Get(ctx context.Context, userID, id string) (Book, error) {
	return s.repo.GetByID(ctx, userID, id)
}

func (s *Service) GetByGoogleID(ctx context.Context, userID, googleBookID string) (Book, error) {
	return s.repo.GetByGoogleID(ctx, userID, googleBookID)
}

// Update applies cmd and reports whether the stored book changed.
func (s *Service) Update(ctx context.Context, userID, id string, cmd UpdateCommand) (Book, bool, error) {
	b, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return Book{}, false, err
	}
	changed, err := cmd.apply(&b, s.now().UTC())
	if err != nil {
		return Book{}, false, err
	}
	if !changed {
		return b, false, nil
	}
	if err := s.repo.Update(ctx, &b); err != nil {
		return Book{}, false, err
	}
	return b, true, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}
