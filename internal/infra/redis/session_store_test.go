package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/VanderY/proctoring-bot/internal/domain"
)

func newTestStore(t *testing.T, ttl time.Duration) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionStore(client, ttl), server
}

func TestSessionStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, time.Hour)

	if _, ok, err := store.Get(ctx, "s1"); ok || err != nil {
		t.Fatalf("expected empty store, got ok=%v err=%v", ok, err)
	}

	session := &domain.QuizSession{
		UserID:       "s1",
		TestName:     "Математика",
		State:        domain.StateInProgress,
		NextQuestion: 1,
		Transcript: []domain.AnswerRecord{
			{Prompt: "2+2?", Correct: true},
		},
	}
	if err := store.Put(ctx, session); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := store.Get(ctx, "s1")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.TestName != session.TestName || got.NextQuestion != session.NextQuestion {
		t.Fatalf("unexpected session %+v", got)
	}
	if len(got.Transcript) != 1 || !got.Transcript[0].Correct {
		t.Fatalf("transcript lost: %+v", got.Transcript)
	}

	if err := store.Delete(ctx, "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "s1"); ok {
		t.Fatalf("expected session gone after delete")
	}
}

func TestSessionStoreTTLExpiry(t *testing.T) {
	ctx := context.Background()
	store, server := newTestStore(t, 30*time.Minute)

	if err := store.Put(ctx, &domain.QuizSession{UserID: "s1", TestName: "Тест"}); err != nil {
		t.Fatalf("put: %v", err)
	}

	server.FastForward(29 * time.Minute)
	if _, ok, _ := store.Get(ctx, "s1"); !ok {
		t.Fatalf("expected session alive before the idle timeout")
	}

	server.FastForward(2 * time.Minute)
	if _, ok, _ := store.Get(ctx, "s1"); ok {
		t.Fatalf("expected session expired after the idle timeout")
	}
}
