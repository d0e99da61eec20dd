package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"recipe-recommender/internal/infrastructure/config"
	"recipe-recommender/internal/pkg/common"
)

func memoryStoreConfig(ttl time.Duration, maxSize int) *config.Config {
	return &config.Config{
		Recommend: config.RecommendConfig{SessionTTL: ttl},
		Cache:     config.CacheConfig{MaxSize: maxSize, CleanupInterval: time.Minute},
	}
}

func TestMemorySessionStorePutGet(t *testing.T) {
	store := newMemorySessionStore(memoryStoreConfig(time.Minute, 10))
	defer store.Close()

	session := NewSession()
	session.Present(&common.RankedResult{Items: []common.RankedItem{
		{RecipeID: "1", Name: "Chicken Soup", Score: 0.9},
	}})

	if err := store.Put(context.Background(), session); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.Get(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.ID != session.ID || !got.Presenting || len(got.Result.Items) != 1 {
		t.Errorf("unexpected session: %+v", got)
	}

	if _, err := store.Get(context.Background(), "absent"); !errors.Is(err, common.ErrSessionNotFound) {
		t.Errorf("got %v, want ErrSessionNotFound", err)
	}
}

func TestMemorySessionStoreTTL(t *testing.T) {
	store := newMemorySessionStore(memoryStoreConfig(10*time.Millisecond, 10))
	defer store.Close()

	session := NewSession()
	if err := store.Put(context.Background(), session); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	time.Sleep(30 * time.Millisecond)
	if _, err := store.Get(context.Background(), session.ID); !errors.Is(err, common.ErrSessionNotFound) {
		t.Errorf("expired session should be gone, got %v", err)
	}
}

func TestMemorySessionStoreEviction(t *testing.T) {
	store := newMemorySessionStore(memoryStoreConfig(time.Minute, 1))
	defer store.Close()

	first := NewSession()
	if err := store.Put(context.Background(), first); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	second := NewSession()
	second.UpdatedAt = first.UpdatedAt.Add(time.Second)
	if err := store.Put(context.Background(), second); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	// 容量滿時淘汰更新時間最舊的會話
	if _, err := store.Get(context.Background(), first.ID); !errors.Is(err, common.ErrSessionNotFound) {
		t.Errorf("oldest session should be evicted, got %v", err)
	}
	if _, err := store.Get(context.Background(), second.ID); err != nil {
		t.Errorf("newest session should survive, got %v", err)
	}
}

func TestNewSessionStoreDefaultsToMemory(t *testing.T) {
	store, err := NewSessionStore(memoryStoreConfig(time.Minute, 10))
	if err != nil {
		t.Fatalf("NewSessionStore failed: %v", err)
	}
	defer store.Close()

	if _, ok := store.(*memorySessionStore); !ok {
		t.Errorf("expected memory session store, got %T", store)
	}
}
