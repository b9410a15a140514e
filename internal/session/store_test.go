package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-chi-calculator/internal/config"
)

func newTestStore(max int, idle time.Duration) (*Store, *time.Time) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewStore(config.SessionConfig{MaxSessions: max, IdleTimeout: idle})
	s.now = func() time.Time { return now }
	return s, &now
}

func TestStorePressAppliesKeysInOrder(t *testing.T) {
	s, _ := newTestStore(4, time.Minute)
	id, snap, err := s.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if snap.Display != "0" {
		t.Fatalf("expected fresh display 0, got %q", snap.Display)
	}

	snap, err = s.Press(context.Background(), id, []string{"2", "+", "3", "×", "4", "="})
	if err != nil {
		t.Fatalf("Press: %v", err)
	}
	if snap.Display != "20" {
		t.Fatalf("expected 20, got %q", snap.Display)
	}

	got, err := s.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Display != "20" {
		t.Fatalf("expected stored display 20, got %q", got.Display)
	}
}

func TestStorePressRejectsUnknownKeyWithoutApplying(t *testing.T) {
	s, _ := newTestStore(4, time.Minute)
	id, _, _ := s.Create()

	_, err := s.Press(context.Background(), id, []string{"7", "^"})
	if !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("expected ErrUnknownKey, got %v", err)
	}

	snap, _ := s.Get(id)
	if snap.Display != "0" {
		t.Fatalf("expected untouched session, got %q", snap.Display)
	}
}

func TestStoreUnknownSession(t *testing.T) {
	s, _ := newTestStore(4, time.Minute)

	if _, err := s.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get: expected ErrNotFound, got %v", err)
	}
	if _, err := s.Press(context.Background(), "missing", []string{"1"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Press: expected ErrNotFound, got %v", err)
	}
	if err := s.Delete("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete: expected ErrNotFound, got %v", err)
	}
}

func TestStoreDelete(t *testing.T) {
	s, _ := newTestStore(4, time.Minute)
	id, _, _ := s.Create()

	if err := s.Delete(id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if n := s.Len(); n != 0 {
		t.Fatalf("expected empty store, got %d", n)
	}
}

func TestStoreExpiresIdleSessions(t *testing.T) {
	s, now := newTestStore(4, time.Minute)
	id, _, _ := s.Create()

	*now = now.Add(30 * time.Second)
	if _, err := s.Get(id); err != nil {
		t.Fatalf("expected live session, got %v", err)
	}

	*now = now.Add(61 * time.Second)
	if _, err := s.Get(id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expired session, got %v", err)
	}
}

func TestStoreFull(t *testing.T) {
	s, now := newTestStore(2, time.Minute)
	for i := 0; i < 2; i++ {
		if _, _, err := s.Create(); err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
	}

	if _, _, err := s.Create(); !errors.Is(err, ErrStoreFull) {
		t.Fatalf("expected ErrStoreFull, got %v", err)
	}

	*now = now.Add(2 * time.Minute)
	if _, _, err := s.Create(); err != nil {
		t.Fatalf("expected expired sessions to make room, got %v", err)
	}
	if n := s.Len(); n != 1 {
		t.Fatalf("expected 1 live session, got %d", n)
	}
}
