package memory

import (
	"context"
	"testing"
	"time"

	"github.com/VanderY/proctoring-bot/internal/domain"
)

func TestSessionStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(0)

	if _, ok, err := store.Get(ctx, "s1"); ok || err != nil {
		t.Fatalf("expected empty store, got ok=%v err=%v", ok, err)
	}

	session := &domain.QuizSession{
		UserID:   "s1",
		TestName: "Математика",
		State:    domain.StateInProgress,
	}
	if err := store.Put(ctx, session); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := store.Get(ctx, "s1")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.TestName != "Математика" {
		t.Fatalf("unexpected session %+v", got)
	}

	if err := store.Delete(ctx, "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "s1"); ok {
		t.Fatalf("expected session gone after delete")
	}
}

func TestSessionStoreExpiresIdleSessions(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	store := NewSessionStoreWithClock(30*time.Minute, func() time.Time { return now })

	if err := store.Put(ctx, &domain.QuizSession{UserID: "s1", TestName: "Тест"}); err != nil {
		t.Fatalf("put: %v", err)
	}

	// activity within the window refreshes the idle timer
	now = now.Add(20 * time.Minute)
	if _, ok, _ := store.Get(ctx, "s1"); !ok {
		t.Fatalf("expected session alive after 20m")
	}
	now = now.Add(20 * time.Minute)
	if _, ok, _ := store.Get(ctx, "s1"); !ok {
		t.Fatalf("expected session alive, last touch was 20m ago")
	}

	now = now.Add(31 * time.Minute)
	if _, ok, _ := store.Get(ctx, "s1"); ok {
		t.Fatalf("expected idle session expired")
	}
}
