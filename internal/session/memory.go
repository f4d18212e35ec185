package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	memo    Memo
	expires time.Time
}

// MemoryStore keeps memos in process, each for ttl after its last write.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, entries: make(map[string]memoryEntry), now: time.Now}
}

func memoryKey(sessionID, key string) string {
	return sessionID + "\x00" + key
}

func (s *MemoryStore) Get(_ context.Context, sessionID, key string) (*Memo, error) {
	if sessionID == "" {
		return nil, ErrNoSession
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	k := memoryKey(sessionID, key)
	e, ok := s.entries[k]
	if !ok {
		return nil, nil
	}
	if s.ttl > 0 && !s.now().Before(e.expires) {
		delete(s.entries, k)
		return nil, nil
	}
	memo := e.memo
	return &memo, nil
}

func (s *MemoryStore) Put(_ context.Context, sessionID, key string, memo Memo) error {
	if sessionID == "" {
		return ErrNoSession
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.ttl > 0 {
		for k, e := range s.entries {
			if !now.Before(e.expires) {
				delete(s.entries, k)
			}
		}
	}
	s.entries[memoryKey(sessionID, key)] = memoryEntry{memo: memo, expires: now.Add(s.ttl)}
	return nil
}

// Len reports how many memos are held, expired ones included until swept.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
