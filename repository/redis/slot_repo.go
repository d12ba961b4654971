package redis

import (
	"context"
	"errors"
	"fmt"

	redislib "github.com/redis/go-redis/v9"

	"github.com/fastygo/tasklist/domain"
	"github.com/fastygo/tasklist/repository"
)

// Slot stores slot values as plain Redis strings without expiry.
type Slot struct {
	client *redislib.Client
	prefix string
}

// NewSlot creates a Redis-backed slot. Keys are stored as prefix+key.
func NewSlot(client *redislib.Client, prefix string) *Slot {
	if prefix == "" {
		prefix = "tasklist:"
	}
	return &Slot{
		client: client,
		prefix: prefix,
	}
}

func (s *Slot) Read(ctx context.Context, key string) ([]byte, error) {
	result, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, domain.ErrSlotEmpty
		}
		return nil, err
	}
	return result, nil
}

func (s *Slot) Write(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, s.key(key), value, 0).Err()
}

func (s *Slot) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Slot) key(id string) string {
	return fmt.Sprintf("%s%s", s.prefix, id)
}

var _ repository.Slot = (*Slot)(nil)
