package memory

import (
	"context"
	"sync"

	"github.com/fastygo/tasklist/domain"
	"github.com/fastygo/tasklist/repository"
)

// Slot keeps slot values in process memory. Useful for tests and for
// running the service without touching disk.
type Slot struct {
	mu     sync.RWMutex
	values map[string][]byte

	// FailWrites makes every Write return the given error.
	FailWrites error
}

func NewSlot() *Slot {
	return &Slot{values: make(map[string][]byte)}
}

func (s *Slot) Read(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return nil, domain.ErrSlotEmpty
	}
	return append([]byte(nil), v...), nil
}

func (s *Slot) Write(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.values[key] = append([]byte(nil), value...)
	return nil
}

// Ping always succeeds.
func (s *Slot) Ping(context.Context) error {
	return nil
}

var _ repository.Slot = (*Slot)(nil)
