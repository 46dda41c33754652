package folio

import (
	"context"
	"sync"

	"github.com/gofrs/uuid/v5"
)

type counterKey struct {
	tenantID uuid.UUID
	series   string
}

// MemoryStore keeps counters in process memory.
type MemoryStore struct {
	mu       sync.Mutex
	counters map[counterKey]int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		counters: make(map[counterKey]int64),
	}
}

func (s *MemoryStore) Increment(ctx context.Context, tenantID uuid.UUID, series string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	k := counterKey{tenantID: tenantID, series: series}
	s.counters[k]++

	return s.counters[k], nil
}
