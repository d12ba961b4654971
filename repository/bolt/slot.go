package bolt

import (
	"context"

	bbolt "go.etcd.io/bbolt"

	"github.com/fastygo/tasklist/domain"
	"github.com/fastygo/tasklist/repository"
)

// DefaultBucket holds slot values when no bucket is configured.
const DefaultBucket = "slots"

// Slot stores slot values in a single BoltDB bucket.
type Slot struct {
	db     *bbolt.DB
	bucket []byte
}

// NewSlot returns a BoltDB-backed Slot. The bucket must already exist.
func NewSlot(db *bbolt.DB, bucket string) *Slot {
	if bucket == "" {
		bucket = DefaultBucket
	}
	return &Slot{db: db, bucket: []byte(bucket)}
}

func (s *Slot) Read(_ context.Context, key string) ([]byte, error) {
	if s.db == nil {
		return nil, bbolt.ErrDatabaseNotOpen
	}
	var out []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(s.bucket).Get([]byte(key))
		if v == nil {
			return domain.ErrSlotEmpty
		}
		out = append([]byte(nil), v...)
		return nil
	})
	return out, err
}

func (s *Slot) Write(_ context.Context, key string, value []byte) error {
	if s.db == nil {
		return bbolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(key), value)
	})
}

// Ping verifies the bucket is reachable.
func (s *Slot) Ping(context.Context) error {
	if s.db == nil {
		return bbolt.ErrDatabaseNotOpen
	}
	return s.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket(s.bucket) == nil {
			return bbolt.ErrBucketNotFound
		}
		return nil
	})
}

var _ repository.Slot = (*Slot)(nil)
