package stats

import (
	"context"

	"freader/internal/library"
	"freader/internal/user"

	"golang.org/x/sync/errgroup"
)

type ProfileSource interface {
	Ensure(ctx context.Context, accountID, email string) (user.User, error)
}

type LibrarySource interface {
	All(ctx context.Context, userID string) ([]library.Book, error)
}

type Service struct {
	profiles ProfileSource
	books    LibrarySource
}

func NewService(profiles ProfileSource, books LibrarySource) *Service {
	return &Service{profiles: profiles, books: books}
}

// ForUser loads the profile and the library concurrently and computes the
// statistics for accountID.
func (s *Service) ForUser(ctx context.Context, accountID, email string) (Stats, error) {
	var (
		profile user.User
		books   []library.Book
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = s.profiles.Ensure(gctx, accountID, email)
		return err
	})
	g.Go(func() error {
		var err error
		books, err = s.books.All(gctx, accountID)
		return err
	})
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}

	if email == "" {
		email = profile.Email
	}
	return Compute(profile.DisplayName, email, books), nil
}
