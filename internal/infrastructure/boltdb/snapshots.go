package boltdb

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// SnapshotBucket is the default bucket for snapshot entries.
const SnapshotBucket = "snapshots"

// SnapshotStore keeps snapshots in a BoltDB bucket ordered by capture time.
type SnapshotStore struct {
	db     *bolt.DB
	bucket []byte
}

// OpenSnapshotStore opens (or creates) the snapshot database at path.
func OpenSnapshotStore(path string) (*SnapshotStore, error) {
	db, err := Open(path, SnapshotBucket)
	if err != nil {
		return nil, err
	}
	return &SnapshotStore{db: db, bucket: []byte(SnapshotBucket)}, nil
}

// Put stores a snapshot under a time-ordered key.
func (s *SnapshotStore) Put(snap Snapshot) (Snapshot, error) {
	if s == nil || s.db == nil {
		return snap, bolt.ErrDatabaseNotOpen
	}
	snap.normalize()
	snap.bucketKey = []byte(buildKey(snap))

	payload, err := json.Marshal(snap)
	if err != nil {
		return snap, err
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put(snap.bucketKey, payload)
	})
	return snap, err
}

// Latest returns the most recent snapshot. ok is false when the bucket is empty.
func (s *SnapshotStore) Latest() (snap Snapshot, ok bool, err error) {
	if s == nil || s.db == nil {
		return snap, false, bolt.ErrDatabaseNotOpen
	}
	err = s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if err := json.Unmarshal(v, &snap); err != nil {
				continue
			}
			snap.bucketKey = append([]byte(nil), k...)
			ok = true
			return nil
		}
		return nil
	})
	return snap, ok, err
}

// List returns up to limit snapshots, newest first.
func (s *SnapshotStore) List(limit int) ([]Snapshot, error) {
	if s == nil || s.db == nil {
		return nil, bolt.ErrDatabaseNotOpen
	}
	if limit <= 0 {
		limit = 50
	}

	var snaps []Snapshot
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		for k, v := c.Last(); k != nil && len(snaps) < limit; k, v = c.Prev() {
			var snap Snapshot
			if err := json.Unmarshal(v, &snap); err != nil {
				continue
			}
			snap.bucketKey = append([]byte(nil), k...)
			snaps = append(snaps, snap)
		}
		return nil
	})
	return snaps, err
}

// Size returns the number of stored snapshots.
func (s *SnapshotStore) Size() (int, error) {
	if s == nil || s.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}
	var count int
	err := s.db.View(func(tx *bolt.Tx) error {
		count = tx.Bucket(s.bucket).Stats().KeyN
		return nil
	})
	return count, err
}

// Cleanup removes snapshots captured before olderThan and returns how many went.
func (s *SnapshotStore) Cleanup(olderThan time.Time) (int, error) {
	if s == nil || s.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}
	removed := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		var stale [][]byte
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var snap Snapshot
			if err := json.Unmarshal(v, &snap); err != nil {
				continue
			}
			if snap.Timestamp.Before(olderThan) {
				stale = append(stale, append([]byte(nil), k...))
			}
		}
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	return removed, err
}

// Ping checks that the database file is still open.
func (s *SnapshotStore) Ping() error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(s.bucket) == nil {
			return fmt.Errorf("bucket %s missing", s.bucket)
		}
		return nil
	})
}

// Close closes the Bolt database.
func (s *SnapshotStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func buildKey(snap Snapshot) string {
	return fmt.Sprintf("%020d_%s", snap.Timestamp.UnixNano(), snap.ID)
}
