package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"freader/internal/platform/crypto"

	"go.uber.org/zap"
)

type Service struct {
	accounts  AccountRepository
	blacklist BlacklistRepository
	profiles  ProfileCreator
	secret    string
	tokenTTL  time.Duration
	log       *zap.Logger
	now       func() time.Time
}

func NewService(accounts AccountRepository, blacklist BlacklistRepository, profiles ProfileCreator, secret string, tokenTTL time.Duration, log *zap.Logger) *Service {
	return &Service{
		accounts:  accounts,
		blacklist: blacklist,
		profiles:  profiles,
		secret:    secret,
		tokenTTL:  tokenTTL,
		log:       log,
		now:       time.Now,
	}
}

// Register creates the account and its user document, then signs the
// caller in.
func (s *Service) Register(ctx context.Context, email, password string) (Session, error) {
	email = normalizeEmail(email)
	if err := crypto.ValidatePasswordStrength(password); err != nil {
		return Session{}, err
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	a := &Account{Email: email, PasswordHash: hash}
	if err := s.accounts.Create(ctx, a); err != nil {
		return Session{}, err
	}

	// A failed profile write leaves the account usable; GET /v1/me fills the gap.
	if _, err := s.profiles.CreateForAccount(ctx, a.ID, a.Email); err != nil {
		s.log.Warn("create user document failed", zap.String("account_id", a.ID), zap.Error(err))
	}

	return s.issue(*a)
}

func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	a, err := s.accounts.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Session{}, ErrUnauthorized
		}
		return Session{}, err
	}
	if !crypto.VerifyPassword(a.PasswordHash, password) {
		return Session{}, ErrUnauthorized
	}
	return s.issue(a)
}

func (s *Service) issue(a Account) (Session, error) {
	token, _, err := crypto.GenerateToken(s.secret, a.ID, a.Email, s.tokenTTL)
	if err != nil {
		return Session{}, fmt.Errorf("sign token: %w", err)
	}
	return Session{
		AccessToken: token,
		ExpiresIn:   int(s.tokenTTL.Seconds()),
		UserID:      a.ID,
		Email:       a.Email,
	}, nil
}

// Logout revokes the token identified by claims until it would expire anyway.
func (s *Service) Logout(ctx context.Context, claims *crypto.Claims) error {
	if claims == nil || claims.ID == "" {
		return ErrUnauthorized
	}
	expiresAt := s.now().Add(s.tokenTTL)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return s.blacklist.Add(ctx, claims.ID, claims.Sub, expiresAt)
}

func (s *Service) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	return s.blacklist.IsBlacklisted(ctx, jti)
}

func (s *Service) CleanupExpired(ctx context.Context) (int64, error) {
	return s.blacklist.DeleteExpired(ctx, s.now())
}

// RunJanitor calls CleanupExpired every interval until ctx is done.
func (s *Service) RunJanitor(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			n, err := s.CleanupExpired(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				s.log.Warn("blacklist cleanup failed", zap.Error(err))
				continue
			}
			if n > 0 {
				s.log.Debug("blacklist cleanup", zap.Int64("removed", n))
			}
		}
	}
}
