package boltdb

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Snapshot is a point-in-time copy of a slot payload.
type Snapshot struct {
	ID        string          `json:"id"`
	SlotKey   string          `json:"slot_key"`
	Data      json.RawMessage `json:"data"`
	TaskCount int             `json:"task_count"`
	Timestamp time.Time       `json:"timestamp"`

	bucketKey []byte
}

func (s *Snapshot) normalize() {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Timestamp.IsZero() {
		s.Timestamp = time.Now()
	}
}
