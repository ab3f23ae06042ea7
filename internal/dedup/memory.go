package dedup

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps the seen-set in process memory. With ttl zero the set
// grows without bound for the lifetime of the process, which is the
// reference behavior; a non-zero ttl expires entries lazily on lookup.
type MemoryStore struct {
	mu   sync.Mutex
	seen map[string]time.Time
	ttl  time.Duration
	now  func() time.Time
}

var _ SeenStore = (*MemoryStore)(nil)

// NewMemoryStore builds an in-memory seen store. ttl of zero disables
// eviction.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		seen: make(map[string]time.Time),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (m *MemoryStore) HasSeen(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	markedAt, ok := m.seen[id]
	if !ok {
		return false, nil
	}
	if m.ttl > 0 && m.now().Sub(markedAt) > m.ttl {
		delete(m.seen, id)
		return false, nil
	}
	return true, nil
}

func (m *MemoryStore) MarkSeen(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seen[id] = m.now()
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
