package repository

import "context"

// Slot is a single named value in a persistent key-value store.
// Read returns domain.ErrSlotEmpty when nothing has been written under key.
// Write overwrites the previous value.
type Slot interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, value []byte) error
}
