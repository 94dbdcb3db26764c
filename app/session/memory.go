package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryRecord struct {
	userID    uint
	flashes   []Flash
	expiresAt time.Time
}

// MemoryStore holds sessions in process memory. Sessions vanish on
// restart, which matches the single-node deployment this app targets.
type MemoryStore struct {
	mu   sync.Mutex
	ttl  time.Duration
	recs map[string]*memoryRecord
	now  func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, recs: make(map[string]*memoryRecord), now: time.Now}
}

// get returns a live record and refreshes its deadline. Callers hold mu.
func (s *MemoryStore) get(sid string) (*memoryRecord, bool) {
	rec, ok := s.recs[sid]
	if !ok {
		return nil, false
	}
	if s.now().After(rec.expiresAt) {
		delete(s.recs, sid)
		return nil, false
	}
	rec.expiresAt = s.now().Add(s.ttl)
	return rec, true
}

func (s *MemoryStore) Create(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// opportunistic sweep so abandoned sessions do not pile up
	for sid, rec := range s.recs {
		if s.now().After(rec.expiresAt) {
			delete(s.recs, sid)
		}
	}
	sid := uuid.NewString()
	s.recs[sid] = &memoryRecord{expiresAt: s.now().Add(s.ttl)}
	return sid, nil
}

func (s *MemoryStore) SetUser(ctx context.Context, sid string, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.get(sid)
	if !ok {
		return ErrNoSession
	}
	rec.userID = userID
	return nil
}

func (s *MemoryStore) UserID(ctx context.Context, sid string) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.get(sid)
	if !ok {
		return 0, ErrNoSession
	}
	return rec.userID, nil
}

func (s *MemoryStore) ClearUser(ctx context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.get(sid)
	if !ok {
		return ErrNoSession
	}
	rec.userID = 0
	return nil
}

func (s *MemoryStore) Destroy(ctx context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.recs, sid)
	return nil
}

func (s *MemoryStore) PushFlash(ctx context.Context, sid string, f Flash) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.get(sid)
	if !ok {
		return ErrNoSession
	}
	rec.flashes = append(rec.flashes, f)
	return nil
}

func (s *MemoryStore) PopFlashes(ctx context.Context, sid string) ([]Flash, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.get(sid)
	if !ok {
		return nil, ErrNoSession
	}
	flashes := rec.flashes
	rec.flashes = nil
	return flashes, nil
}
