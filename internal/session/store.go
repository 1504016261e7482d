package session

import (
	"sync"

	"github.com/google/uuid"
	"github.com/nikolayk812/checkout-demo/internal/port"
)

// Store holds server-side session bags keyed by an opaque ID which is
// the only thing handed to clients.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
	}
}

func (s *Store) New() (string, *Session) {
	id := uuid.NewString()
	sess := &Session{values: make(map[string]any)}

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	return id, sess
}

func (s *Store) Get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	return sess, ok
}

// GetOrCreate resolves id to its session, minting a fresh one when the
// id is empty or unknown. It returns the effective id.
func (s *Store) GetOrCreate(id string) (string, *Session) {
	if id != "" {
		if sess, ok := s.Get(id); ok {
			return id, sess
		}
	}
	return s.New()
}

// Session is one client's key/value bag. The map itself is guarded, but
// there is no locking discipline across read-modify-write sequences of
// two concurrent requests for the same session.
type Session struct {
	mu     sync.RWMutex
	values map[string]any
}

func (s *Session) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	return v, ok
}

func (s *Session) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
}

func (s *Session) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

func (s *Session) Pop(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.values[key]
	if ok {
		delete(s.values, key)
	}
	return v, ok
}

var _ port.Session = (*Session)(nil)
