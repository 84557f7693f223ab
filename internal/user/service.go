package user

import (
	"context"
	"errors"
	"fmt"
)

type Service struct {
	repo     Repository
	defaults Defaults
}

func NewService(repo Repository, defaults Defaults) *Service {
	return &Service{repo: repo, defaults: defaults}
}

// CreateForAccount writes the profile document of a freshly registered account.
func (s *Service) CreateForAccount(ctx context.Context, accountID, email string) (User, error) {
	u := &User{
		AccountID:   accountID,
		Email:       email,
		DisplayName: DisplayNameFromEmail(email),
		Quote:       s.defaults.Quote,
		Profession:  s.defaults.Profession,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, fmt.Errorf("create user document: %w", err)
	}
	return *u, nil
}

func (s *Service) GetByAccountID(ctx context.Context, accountID string) (User, error) {
	return s.repo.GetByAccountID(ctx, accountID)
}

// Ensure returns the profile of accountID, creating it when registration
// stopped between the account and profile writes.
func (s *Service) Ensure(ctx context.Context, accountID, email string) (User, error) {
	u, err := s.repo.GetByAccountID(ctx, accountID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}
	u, err = s.CreateForAccount(ctx, accountID, email)
	if errors.Is(err, ErrAlreadyExists) {
		return s.repo.GetByAccountID(ctx, accountID)
	}
	return u, err
}

func (s *Service) Update(ctx context.Context, accountID string, cmd UpdateCommand) (User, error) {
	u, err := s.repo.GetByAccountID(ctx, accountID)
	if err != nil {
		return User{}, err
	}
	if !cmd.Apply(&u) {
		return u, nil
	}
	if err := s.repo.Update(ctx, &u); err != nil {
		return User{}, fmt.Errorf("update user document: %w", err)
	}
	return u, nil
}
