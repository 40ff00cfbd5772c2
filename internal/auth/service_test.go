package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mailgate/mailgate/internal/account"
	"github.com/mailgate/mailgate/internal/config"
	"github.com/mailgate/mailgate/internal/hash"
)

func newTestService(t *testing.T) (*Service, account.Repository, hash.Hasher) {
	t.Helper()
	cfg := config.Config{
		JWTSecret:      "test-secret",
		AccessTokenTTL: 15 * time.Minute,
	}
	repo := account.NewMemoryRepository()
	hasher := hash.NewBcryptHasher(4)
	return NewService(cfg, repo, hasher), repo, hasher
}

func seedAccount(t *testing.T, repo account.Repository, hasher hash.Hasher, username, email, password string) account.Account {
	t.Helper()
	digest, err := hasher.Hash(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	acc := account.Account{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: digest,
		CreatedAt:    time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), acc); err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return acc
}

func TestLoginWithUsernameAndEmail(t *testing.T) {
	svc, repo, hasher := newTestService(t)
	acc := seedAccount(t, repo, hasher, "alice", "a@x.com", "pw1secret")
	ctx := context.Background()

	for _, identifier := range []string{"alice", "a@x.com"} {
		got, token, err := svc.Login(ctx, identifier, "pw1secret")
		if err != nil {
			t.Fatalf("login with %q: %v", identifier, err)
		}
		if got.ID != acc.ID {
			t.Fatalf("expected account %s, got %s", acc.ID, got.ID)
		}
		if token.AccessToken == "" || token.ExpiresIn != int64(15*60) {
			t.Fatalf("unexpected token: %+v", token)
		}

		claims, err := VerifyAccessToken(token.AccessToken, []byte("test-secret"))
		if err != nil {
			t.Fatalf("verify token: %v", err)
		}
		if claims.Subject != acc.ID || claims.Username != "alice" {
			t.Fatalf("unexpected claims: %+v", claims)
		}
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, repo, hasher := newTestService(t)
	seedAccount(t, repo, hasher, "alice", "a@x.com", "pw1secret")

	_, _, err := svc.Login(context.Background(), "alice", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownIdentifier(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, _, err := svc.Login(context.Background(), "ghost", "whatever")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestVerifyAccessTokenRejectsWrongSecret(t *testing.T) {
	signed, err := SignAccessToken("id-1", "alice", "a@x.com", []byte("secret-a"), time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := VerifyAccessToken(signed, []byte("secret-b")); err == nil {
		t.Fatal("expected verification failure with wrong secret")
	}
}

func TestVerifyAccessTokenRejectsExpired(t *testing.T) {
	signed, err := SignAccessToken("id-1", "alice", "a@x.com", []byte("secret"), -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := VerifyAccessToken(signed, []byte("secret")); err == nil {
		t.Fatal("expected verification failure for expired token")
	}
}
