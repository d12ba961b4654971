package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/tasklist/domain"
	"github.com/fastygo/tasklist/repository"
)

// Slot keeps slot values in the storage_slots table, one row per key.
type Slot struct {
	pool *pgxpool.Pool
}

// NewSlot returns a Postgres-backed Slot.
func NewSlot(pool *pgxpool.Pool) *Slot {
	return &Slot{pool: pool}
}

func (s *Slot) Read(ctx context.Context, key string) ([]byte, error) {
	const query = `
	SELECT value
	FROM storage_slots
	WHERE key = $1
	`
	var value []byte
	if err := s.pool.QueryRow(ctx, query, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSlotEmpty
		}
		return nil, err
	}
	return value, nil
}

func (s *Slot) Write(ctx context.Context, key string, value []byte) error {
	const query = `
	INSERT INTO storage_slots (key, value, updated_at)
	VALUES ($1, $2, NOW())
	ON CONFLICT (key) DO UPDATE
	SET value = EXCLUDED.value,
		updated_at = NOW()
	`
	_, err := s.pool.Exec(ctx, query, key, value)
	return err
}

func (s *Slot) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

var _ repository.Slot = (*Slot)(nil)
