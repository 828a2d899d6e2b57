// Package users holds the credential store and the login/authorization
// service built on it.
package users

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/server/auth"
	"github.com/dmitrijs2005/notekeeper/internal/server/config"
)

type Service struct {
	repo                        Repository
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	logger                      logging.Logger
}

func NewService(repo Repository, cfg *config.Config, logger logging.Logger) *Service {
	return &Service{
		repo:                        repo,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		logger:                      logger.With("module", "users"),
	}
}

// Login verifies the username/password pair and issues an access token.
// Unknown user and wrong password both return common.ErrUnauthorized;
// the caller learns nothing about which check failed.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.repo.Find(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrUnauthorized
		}
		return "", err
	}

	ok, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		// A malformed stored hash is an operator problem, not something
		// to leak to the client.
		s.logger.Error(ctx, "stored credential is unusable", "username", username, "error", err.Error())
		return "", common.ErrUnauthorized
	}
	if !ok {
		return "", common.ErrUnauthorized
	}

	token, err := auth.GenerateToken(user.Username, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", err
	}

	return token, nil
}

// Resolve validates a bearer token and maps its subject to a known user.
// Invalid tokens and tokens for users absent from the store fail with the
// same common.ErrUnauthorized, keeping the outcomes indistinguishable.
func (s *Service) Resolve(ctx context.Context, tokenString string) (*User, error) {
	subject, err := auth.GetSubjectFromToken(tokenString, s.jwtSecret)
	if err != nil {
		return nil, common.ErrUnauthorized
	}

	user, err := s.repo.Find(ctx, subject)
	if err != nil {
		return nil, common.ErrUnauthorized
	}

	return user, nil
}
