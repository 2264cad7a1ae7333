package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/metavr/dashauth/internal/dashauth/domain"
	"github.com/metavr/dashauth/internal/dashauth/store"
)

type handshakesRepo struct {
	db *sql.DB
}

const consumeHandshake = `
INSERT INTO consumed_handshakes (fingerprint, user_id, expires_at, consumed_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (fingerprint) DO NOTHING`

// ConsumeHandshake is a single statement so two concurrent exchanges of the
// same token cannot both see zero rows and both win.
func (r *handshakesRepo) ConsumeHandshake(ctx context.Context, h domain.ConsumedHandshake) error {
	res, err := r.db.ExecContext(ctx, consumeHandshake,
		h.Fingerprint,
		h.UserID,
		toMillis(h.ExpiresAt),
		toMillis(h.ConsumedAt),
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrAlreadyExists
	}
	return nil
}

const getConsumedHandshake = `
SELECT fingerprint, user_id, expires_at, consumed_at
FROM consumed_handshakes
WHERE fingerprint = ?`

func (r *handshakesRepo) GetConsumedHandshake(ctx context.Context, fingerprint string) (domain.ConsumedHandshake, error) {
	var (
		h                     domain.ConsumedHandshake
		expiresAt, consumedAt int64
	)
	err := r.db.QueryRowContext(ctx, getConsumedHandshake, fingerprint).
		Scan(&h.Fingerprint, &h.UserID, &expiresAt, &consumedAt)
	if err != nil {
		return domain.ConsumedHandshake{}, mapNotFound(err)
	}

	h.ExpiresAt = fromMillis(expiresAt)
	h.ConsumedAt = fromMillis(consumedAt)
	return h, nil
}

const deleteExpiredHandshakes = `DELETE FROM consumed_handshakes WHERE expires_at < ?`

func (r *handshakesRepo) DeleteExpiredHandshakes(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteExpiredHandshakes, toMillis(now))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
