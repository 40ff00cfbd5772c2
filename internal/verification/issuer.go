package verification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mailgate/mailgate/internal/account"
	"github.com/mailgate/mailgate/internal/mail"
)

const mailSubject = "Your verification code"

// Issuer generates one-time codes and dispatches them by email. It keeps no
// state between calls; every pending code lives in the shared store.
type Issuer struct {
	store     CodeStore
	directory account.Repository
	sender    mail.Sender
	from      string

	codeTTL      time.Duration
	resendWindow time.Duration

	logger *slog.Logger
}

// NewIssuer wires the issuer with its collaborators. codeTTL is the lifetime
// of a pending code and resendWindow the minimum interval between issuances
// for the same key; resendWindow must be shorter than codeTTL.
func NewIssuer(store CodeStore, directory account.Repository, sender mail.Sender, from string, codeTTL, resendWindow time.Duration, logger *slog.Logger) *Issuer {
	return &Issuer{
		store:        store,
		directory:    directory,
		sender:       sender,
		from:         from,
		codeTTL:      codeTTL,
		resendWindow: resendWindow,
		logger:       logger,
	}
}

// RequestCode issues a fresh 6-digit code for (email, sessionID) and mails
// it. A prior pending code blocks reissue until resendWindow has elapsed,
// derived from the remaining TTL of the stored entry. The store is written
// only after the mail dispatch succeeds, so it never holds a code the user
// was not actually sent.
func (i *Issuer) RequestCode(ctx context.Context, email, sessionID string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}

	key := Key(sessionID, email)

	remaining, pending, err := i.store.RemainingTTL(ctx, key)
	if err != nil {
		return err
	}
	// A resend is allowed once the entry has aged past the resend window,
	// i.e. its remaining TTL dropped to codeTTL-resendWindow or below.
	if pending && remaining > i.codeTTL-i.resendWindow {
		return ErrRateLimited
	}

	if _, err := i.directory.FindByIdentifier(ctx, email); err == nil {
		return ErrAlreadyRegistered
	} else if !errors.Is(err, account.ErrNotFound) {
		return fmt.Errorf("lookup account: %w", err)
	}

	code := GenerateCode()

	msg := mail.Message{
		From:    i.from,
		To:      email,
		Subject: mailSubject,
		Body:    fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", code, int(i.codeTTL.Minutes())),
	}
	if err := i.sender.Send(ctx, msg); err != nil {
		i.logger.Warn("verification mail failed", "email", email, "error", err)
		return fmt.Errorf("%w: %w", ErrMailDelivery, err)
	}

	// Overwrites any prior entry for the key and resets its TTL.
	if err := i.store.SetWithTTL(ctx, key, code, i.codeTTL); err != nil {
		return err
	}

	i.logger.Info("verification code issued", "email", email, "ttl", i.codeTTL)
	return nil
}
