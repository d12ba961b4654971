package task

import (
	"sync"

	"github.com/fastygo/tasklist/usecase"
)

// IDAllocator hands out task ids.
type IDAllocator interface {
	Next() int64
	// Observe tells the allocator an id is already taken.
	Observe(id int64)
}

// MonotonicIDs derives ids from the clock in milliseconds but never returns
// a value at or below the last id issued or observed.
type MonotonicIDs struct {
	clock usecase.Clock

	mu   sync.Mutex
	last int64
}

func NewMonotonicIDs(clock usecase.Clock) *MonotonicIDs {
	if clock == nil {
		clock = usecase.SystemClock{}
	}
	return &MonotonicIDs{clock: clock}
}

func (m *MonotonicIDs) Next() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.clock.Now().UnixMilli()
	if id <= m.last {
		id = m.last + 1
	}
	m.last = id
	return id
}

func (m *MonotonicIDs) Observe(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id > m.last {
		m.last = id
	}
}
