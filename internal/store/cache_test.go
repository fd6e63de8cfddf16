package store

import (
	"context"
	"testing"
	"time"

	"github.com/VanderY/proctoring-bot/internal/domain"
)

func TestCachedStoreHitsInnerOnce(t *testing.T) {
	inner := &countingStore{Store: seededStore(t)}
	cached := NewCachedStore(inner, time.Minute)

	if _, err := cached.Load(context.Background(), "Математика"); err != nil {
		t.Fatalf("load: %v", err)
	}
	if inner.loads != 1 {
		t.Fatalf("expected inner loaded once, got %d", inner.loads)
	}

	if _, err := cached.Load(context.Background(), "Математика"); err != nil {
		t.Fatalf("load 2: %v", err)
	}
	if inner.loads != 1 {
		t.Fatalf("expected cache hit, inner loads %d", inner.loads)
	}
}

func TestCachedStoreSaveInvalidates(t *testing.T) {
	inner := &countingStore{Store: seededStore(t)}
	cached := NewCachedStore(inner, time.Minute)

	if _, err := cached.Load(context.Background(), "Математика"); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := cached.Save(context.Background(), sampleTest("Математика")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := cached.Load(context.Background(), "Математика"); err != nil {
		t.Fatalf("load after save: %v", err)
	}
	if inner.loads != 2 {
		t.Fatalf("expected reload after save, inner loads %d", inner.loads)
	}
}

type countingStore struct {
	Store
	loads int
}

func (s *countingStore) Load(ctx context.Context, name string) (domain.TestDefinition, error) {
	s.loads++
	return s.Store.Load(ctx, name)
}

func seededStore(t *testing.T) Store {
	t.Helper()
	fileStore := NewFileStore(t.TempDir())
	if err := fileStore.Save(context.Background(), sampleTest("Математика")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return fileStore
}
