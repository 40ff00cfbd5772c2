package account

import "time"

// Account represents a registered user in the directory.
type Account struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
