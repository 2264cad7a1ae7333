package store

import (
	"context"
	"errors"
	"time"

	"github.com/metavr/dashauth/internal/dashauth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface implemented by each driver.
type Store interface {
	Handshakes() Handshakes

	ApplyMigrations() error

	// Close releases the underlying database.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Handshakes is the single-use ledger for handshake tokens.
type Handshakes interface {
	// ConsumeHandshake records h. It returns ErrAlreadyExists if a handshake
	// with the same fingerprint was consumed before.
	ConsumeHandshake(ctx context.Context, h domain.ConsumedHandshake) error

	// GetConsumedHandshake looks a consumed handshake up by fingerprint.
	GetConsumedHandshake(ctx context.Context, fingerprint string) (domain.ConsumedHandshake, error)

	// DeleteExpiredHandshakes drops rows whose token expired before now and
	// returns how many went.
	DeleteExpiredHandshakes(ctx context.Context, now time.Time) (int64, error)
}
