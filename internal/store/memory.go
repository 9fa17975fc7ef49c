package store

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	rec       Record
	expiresAt time.Time
}

// Memory keeps records in process. Expired records are dropped lazily on read.
type Memory struct {
	mu      sync.RWMutex
	records map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		records: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *Memory) Save(_ context.Context, rec Record) error {
	e := memoryEntry{rec: rec}
	if m.ttl > 0 {
		e.expiresAt = m.now().Add(m.ttl)
	}

	m.mu.Lock()
	m.records[rec.ID] = e
	m.mu.Unlock()
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (Record, error) {
	m.mu.RLock()
	e, ok := m.records[id]
	m.mu.RUnlock()
	if !ok {
		return Record{}, ErrNotFound
	}

	if !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt) {
		m.expire(id, e.expiresAt)
		return Record{}, ErrNotFound
	}
	return e.rec, nil
}

// expire deletes id only if it still holds the entry that was seen expired, so a
// Save racing with the read is kept.
func (m *Memory) expire(id string, expiresAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.records[id]; ok && cur.expiresAt.Equal(expiresAt) {
		delete(m.records, id)
	}
}

func (m *Memory) Close() error { return nil }
