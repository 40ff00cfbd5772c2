package verification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mailgate/mailgate/internal/account"
	"github.com/mailgate/mailgate/internal/hash"
)

// Registration carries the credentials submitted alongside a code.
type Registration struct {
	Username  string
	Password  string
	Email     string
	Code      string
	SessionID string
}

// Consumer validates a submitted code against the pending one and, on match,
// commits the new account through the directory. Stateless between calls.
type Consumer struct {
	store     CodeStore
	directory account.Repository
	hasher    hash.Hasher
	logger    *slog.Logger
}

// NewConsumer wires the consumer with its collaborators.
func NewConsumer(store CodeStore, directory account.Repository, hasher hash.Hasher, logger *slog.Logger) *Consumer {
	return &Consumer{store: store, directory: directory, hasher: hasher, logger: logger}
}

// ConfirmAndRegister checks the submitted code for (email, sessionID) and
// creates the account when it matches. A mismatch does not invalidate the
// pending code, so the caller may retry within the remaining TTL. The entry
// is not deleted on success either; it lapses on expiry and a replay is
// stopped by the directory's uniqueness constraints.
func (c *Consumer) ConfirmAndRegister(ctx context.Context, reg Registration) error {
	key := Key(reg.SessionID, reg.Email)

	exists, err := c.store.Exists(ctx, key)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNoPendingRequest
	}

	// The entry can lapse between the existence check and this read.
	stored, ok, err := c.store.Get(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCodeExpired
	}

	if stored != reg.Code {
		return ErrCodeMismatch
	}

	hashed, err := c.hasher.Hash(reg.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	acc := account.Account{
		ID:           uuid.NewString(),
		Username:     reg.Username,
		Email:        reg.Email,
		PasswordHash: hashed,
		CreatedAt:    time.Now().UTC(),
	}
	if err := c.directory.Create(ctx, acc); err != nil {
		// Both kinds stay inspectable: ErrPersist for the taxonomy, the
		// directory error (e.g. account.ErrDuplicate) for the edge layer.
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}

	c.logger.Info("account registered", "username", reg.Username, "email", reg.Email)
	return nil
}
