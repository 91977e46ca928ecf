package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/angelmondragon/littlelemon-backend/pkg/config"
)

type mockStore struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration
	err  error
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (m *mockStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = fmt.Sprint(value)
	m.ttls[key] = ttl
	return nil
}

func (m *mockStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	val, ok := m.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return val, nil
}

func (m *mockStore) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *mockStore) AccessSessionKey(accessID string) string {
	return fmt.Sprintf("sess:%s", accessID)
}

func TestManagerLifecycle(t *testing.T) {
	store := newMockStore()
	manager := &Manager{store: store, keyer: store, ttl: time.Hour}
	ctx := context.Background()
	accessID := NewAccessID()

	if err := manager.Generate(ctx, accessID, 9); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if store.data["sess:"+accessID] != "9" || store.ttls["sess:"+accessID] != time.Hour {
		t.Fatalf("unexpected stored session %v %v", store.data, store.ttls)
	}

	ok, err := manager.HasSession(ctx, accessID)
	if err != nil || !ok {
		t.Fatalf("expected live session, got %v %v", ok, err)
	}

	if err := manager.Revoke(ctx, accessID); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	ok, err = manager.HasSession(ctx, accessID)
	if err != nil || ok {
		t.Fatalf("expected revoked session, got %v %v", ok, err)
	}
}

func TestManagerRejectsBlankIDs(t *testing.T) {
	store := newMockStore()
	manager := &Manager{store: store, keyer: store, ttl: time.Hour}
	if err := manager.Generate(context.Background(), " ", 1); err == nil {
		t.Fatal("expected generate error")
	}
	if _, err := manager.HasSession(context.Background(), ""); err == nil {
		t.Fatal("expected has session error")
	}
	if err := manager.Revoke(context.Background(), ""); err == nil {
		t.Fatal("expected revoke error")
	}
}

func TestHasSessionSurfacesStoreErrors(t *testing.T) {
	store := newMockStore()
	store.err = errors.New("connection refused")
	manager := &Manager{store: store, keyer: store, ttl: time.Hour}
	if _, err := manager.HasSession(context.Background(), "abc"); err == nil {
		t.Fatal("expected store error")
	}
}

func TestNewManagerValidation(t *testing.T) {
	if _, err := NewManager(nil, config.JWTConfig{ExpirationMinutes: 10}); err == nil {
		t.Fatal("expected error without client")
	}
}
