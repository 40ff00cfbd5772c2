package auth

import (
	"context"
	"errors"
	"time"

	"github.com/mailgate/mailgate/internal/account"
	"github.com/mailgate/mailgate/internal/config"
	"github.com/mailgate/mailgate/internal/hash"
)

// ErrInvalidCredentials covers both unknown identifiers and wrong passwords
// so the response does not leak which accounts exist.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Service authenticates registered accounts and issues access tokens.
type Service struct {
	cfg       config.Config
	directory account.Repository
	hasher    hash.Hasher
}

// NewService builds the auth service.
func NewService(cfg config.Config, directory account.Repository, hasher hash.Hasher) *Service {
	return &Service{cfg: cfg, directory: directory, hasher: hasher}
}

// Token is a signed access token with its lifetime in seconds.
type Token struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Login resolves the identifier (username or email), verifies the password
// and returns a signed token.
func (s *Service) Login(ctx context.Context, identifier, password string) (account.Account, Token, error) {
	acc, err := s.directory.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return account.Account{}, Token{}, ErrInvalidCredentials
		}
		return account.Account{}, Token{}, err
	}

	if err := s.hasher.Compare(acc.PasswordHash, password); err != nil {
		return account.Account{}, Token{}, ErrInvalidCredentials
	}

	signed, err := SignAccessToken(acc.ID, acc.Username, acc.Email, []byte(s.cfg.JWTSecret), s.cfg.AccessTokenTTL)
	if err != nil {
		return account.Account{}, Token{}, err
	}

	return acc, Token{
		AccessToken: signed,
		ExpiresIn:   int64(s.cfg.AccessTokenTTL / time.Second),
	}, nil
}
