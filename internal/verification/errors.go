package verification

import "errors"

// Issue failures. Each one is terminal for the call; retry is caller-driven.
var (
	// ErrRateLimited means a resend was attempted before the resend window
	// elapsed for the key. No mail was sent and the store was not touched.
	ErrRateLimited = errors.New("verification requested too frequently, try again later")
	// ErrAlreadyRegistered means the email already resolves to an account.
	ErrAlreadyRegistered = errors.New("email is already registered")
	// ErrMailDelivery means the transport rejected the send. The store holds
	// no code for the key, so the caller may simply request again.
	ErrMailDelivery = errors.New("verification mail could not be delivered")
)

// Confirm failures.
var (
	// ErrNoPendingRequest means no code was ever issued for the key.
	ErrNoPendingRequest = errors.New("no verification was requested for this session")
	// ErrCodeExpired means the code lapsed between the existence check and
	// the read.
	ErrCodeExpired = errors.New("verification code expired, request a new one")
	// ErrCodeMismatch means the submitted code differs from the stored one.
	// The pending code survives, so the caller may retry within the TTL.
	ErrCodeMismatch = errors.New("verification code does not match")
	// ErrPersist means the account directory rejected the creation.
	ErrPersist = errors.New("account could not be created")
)
