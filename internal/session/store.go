package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-chi-calculator/internal/config"
)

var (
	// ErrNotFound is returned for an unknown or expired session id.
	ErrNotFound = errors.New("session not found")
	// ErrStoreFull is returned when the store holds MaxSessions live sessions.
	ErrStoreFull = errors.New("too many sessions")
	// ErrUnknownKey is returned when a pressed key has no event.
	ErrUnknownKey = errors.New("unknown key")
)

type entry struct {
	session  *Session
	lastUsed time.Time
}

// Store keeps HTTP sessions in memory, keyed by UUID. Sessions idle for
// longer than the configured timeout are dropped lazily.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	max      int
	idle     time.Duration
	now      func() time.Time
}

// NewStore returns an empty store bounded by cfg.
func NewStore(cfg config.SessionConfig) *Store {
	return &Store{
		sessions: make(map[string]*entry),
		max:      cfg.MaxSessions,
		idle:     cfg.IdleTimeout,
		now:      time.Now,
	}
}

// Create starts a new session and returns its id.
func (s *Store) Create() (string, Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.max > 0 && len(s.sessions) >= s.max {
		s.sweepLocked()
		if len(s.sessions) >= s.max {
			return "", Snapshot{}, ErrStoreFull
		}
	}

	id := uuid.NewString()
	sess := New()
	s.sessions[id] = &entry{session: sess, lastUsed: s.now()}
	return id, sess.Snapshot(), nil
}

// Get returns the current state of session id.
func (s *Store) Get(id string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.lookupLocked(id)
	if err != nil {
		return Snapshot{}, err
	}
	return e.session.Snapshot(), nil
}

// Press applies keys to session id in order. Every key is checked before
// any is applied, so an unknown key leaves the session unchanged.
func (s *Store) Press(ctx context.Context, id string, keys []string) (Snapshot, error) {
	for _, k := range keys {
		if !ValidKey(k) {
			return Snapshot{}, fmt.Errorf("%w: %q", ErrUnknownKey, k)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.lookupLocked(id)
	if err != nil {
		return Snapshot{}, err
	}

	e.session.SetEvaluator(Traced(ctx))
	for _, k := range keys {
		e.session.Press(k)
	}
	e.session.SetEvaluator(nil)

	return e.session.Snapshot(), nil
}

// Delete removes session id.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.lookupLocked(id); err != nil {
		return err
	}
	delete(s.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()
	return len(s.sessions)
}

func (s *Store) lookupLocked(id string) (*entry, error) {
	e, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	now := s.now()
	if s.expired(e, now) {
		delete(s.sessions, id)
		return nil, ErrNotFound
	}
	e.lastUsed = now
	return e, nil
}

func (s *Store) sweepLocked() {
	now := s.now()
	for id, e := range s.sessions {
		if s.expired(e, now) {
			delete(s.sessions, id)
		}
	}
}

func (s *Store) expired(e *entry, now time.Time) bool {
	return s.idle > 0 && now.Sub(e.lastUsed) > s.idle
}
