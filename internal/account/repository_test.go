package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestMemoryRepositoryFindByIdentifier(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	acc := Account{
		ID:           uuid.NewString(),
		Username:     "alice",
		Email:        "a@x.com",
		PasswordHash: "$2a$10$fake",
		CreatedAt:    time.Now().UTC(),
	}
	if err := repo.Create(ctx, acc); err != nil {
		t.Fatalf("create: %v", err)
	}

	byName, err := repo.FindByIdentifier(ctx, "alice")
	if err != nil {
		t.Fatalf("find by username: %v", err)
	}
	byMail, err := repo.FindByIdentifier(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if byName.ID != acc.ID || byMail.ID != acc.ID {
		t.Fatalf("expected same account via username and email")
	}

	if _, err := repo.FindByIdentifier(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRepositoryUniqueness(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if err := repo.Create(ctx, Account{ID: uuid.NewString(), Username: "alice", Email: "a@x.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	err := repo.Create(ctx, Account{ID: uuid.NewString(), Username: "alice", Email: "b@x.com"})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for username, got %v", err)
	}
	err = repo.Create(ctx, Account{ID: uuid.NewString(), Username: "bob", Email: "a@x.com"})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for email, got %v", err)
	}
}
