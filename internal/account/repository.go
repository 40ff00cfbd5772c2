package account

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound indicates no account matches the identifier.
	ErrNotFound = errors.New("account not found")
	// ErrDuplicate indicates a username or email uniqueness violation.
	ErrDuplicate = errors.New("username or email already taken")
)

// Repository is the account directory consumed by the verification flow.
// FindByIdentifier matches either a username or an email address.
type Repository interface {
	FindByIdentifier(ctx context.Context, identifier string) (Account, error)
	Create(ctx context.Context, acc Account) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed account directory.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// FindByIdentifier fetches an account whose username or email equals identifier.
func (r *PostgresRepository) FindByIdentifier(ctx context.Context, identifier string) (Account, error) {
	row := r.db.QueryRow(ctx, `SELECT id, username, email, password_hash, created_at
        FROM accounts WHERE username = $1 OR email = $1`, identifier)
	var (
		id        uuid.UUID
		createdAt time.Time
		acc       Account
	)
	if err := row.Scan(&id, &acc.Username, &acc.Email, &acc.PasswordHash, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		return Account{}, err
	}
	acc.ID = id.String()
	acc.CreatedAt = createdAt.UTC()
	return acc, nil
}

// Create inserts a new account. Uniqueness violations surface as ErrDuplicate.
func (r *PostgresRepository) Create(ctx context.Context, acc Account) error {
	accID, err := uuid.Parse(acc.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO accounts (id, username, email, password_hash, created_at)
        VALUES ($1, $2, $3, $4, $5)`, accID, acc.Username, acc.Email, acc.PasswordHash, acc.CreatedAt.UTC())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicate
		}
		return err
	}
	return nil
}
