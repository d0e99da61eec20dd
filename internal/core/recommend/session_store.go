package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"recipe-recommender/internal/infrastructure/config"
	"recipe-recommender/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SessionStore 選擇會話儲存：會話必須跨請求存活，
// 解析選擇時才取得前一次查詢綁定的結果
type SessionStore interface {
	Get(ctx context.Context, id string) (*Session, error)
	Put(ctx context.Context, session *Session) error
	Close() error
}

// NewSessionStore 依設定選擇會話儲存：啟用快取時使用 Redis，否則退回記憶體儲存
func NewSessionStore(cfg *config.Config) (SessionStore, error) {
	if cfg.Cache.Enabled {
		return newRedisSessionStore(cfg)
	}
	return newMemorySessionStore(cfg), nil
}

// ---------------- 記憶體會話儲存 ----------------

// memorySessionStore 記憶體會話儲存，帶 TTL 與定期清理
type memorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	ttl      time.Duration
	maxSize  int
	done     chan struct{}
}

// memoryEntry 儲存條目
type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

// newMemorySessionStore 創建記憶體會話儲存
func newMemorySessionStore(cfg *config.Config) *memorySessionStore {
	m := &memorySessionStore{
		sessions: make(map[string]memoryEntry),
		ttl:      cfg.Recommend.SessionTTL,
		maxSize:  cfg.Cache.MaxSize,
		done:     make(chan struct{}),
	}

	// 啟動清理過期會話的協程
	go m.startCleanup(cfg.Cache.CleanupInterval)

	common.LogInfo("記憶體會話儲存已初始化",
		zap.Duration("存活時間", m.ttl),
		zap.Int("最大容量", m.maxSize),
	)

	return m
}

// Get 取得會話
func (m *memorySessionStore) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	entry, exists := m.sessions[id]
	m.mu.RUnlock()

	if !exists || time.Now().After(entry.expiresAt) {
		return nil, common.ErrSessionNotFound
	}

	session := entry.session
	return &session, nil
}

// Put 寫入會話並重設存活時間
func (m *memorySessionStore) Put(ctx context.Context, session *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// 容量已滿時先清理過期條目，仍滿則淘汰最舊的會話
	if m.maxSize > 0 && len(m.sessions) >= m.maxSize {
		m.cleanupLocked()
		if len(m.sessions) >= m.maxSize {
			m.evictOldestLocked()
		}
	}

	m.sessions[session.ID] = memoryEntry{
		session:   *session,
		expiresAt: time.Now().Add(m.ttl),
	}
	return nil
}

// startCleanup 啟動清理過期會話的協程
func (m *memorySessionStore) startCleanup(interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.mu.Lock()
			m.cleanupLocked()
			m.mu.Unlock()
		case <-m.done:
			return
		}
	}
}

// cleanupLocked 清理過期會話；呼叫端需持有寫鎖
func (m *memorySessionStore) cleanupLocked() {
	now := time.Now()
	count := 0
	for id, entry := range m.sessions {
		if now.After(entry.expiresAt) {
			delete(m.sessions, id)
			count++
		}
	}
	if count > 0 {
		common.LogInfo("過期會話清理完成",
			zap.Int("清理數量", count),
			zap.Int("剩餘數量", len(m.sessions)),
		)
	}
}

// evictOldestLocked 淘汰更新時間最舊的會話；呼叫端需持有寫鎖
func (m *memorySessionStore) evictOldestLocked() {
	var oldestID string
	var oldestAt time.Time
	for id, entry := range m.sessions {
		if oldestID == "" || entry.session.UpdatedAt.Before(oldestAt) {
			oldestID = id
			oldestAt = entry.session.UpdatedAt
		}
	}
	if oldestID != "" {
		delete(m.sessions, oldestID)
		common.LogInfo("會話已淘汰",
			zap.String("會話", oldestID),
		)
	}
}

// Close 關閉儲存
func (m *memorySessionStore) Close() error {
	close(m.done)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = make(map[string]memoryEntry)
	return nil
}

// ---------------- Redis 會話儲存 ----------------

// redisSessionStore Redis 會話儲存：多副本部署時會話不綁定單一進程
type redisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// newRedisSessionStore 創建 Redis 會話儲存
func newRedisSessionStore(cfg *config.Config) (*redisSessionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Cache.RedisAddr,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("Redis 會話儲存已初始化",
		zap.String("位址", cfg.Cache.RedisAddr),
		zap.Duration("存活時間", cfg.Recommend.SessionTTL),
	)

	return &redisSessionStore{
		client: client,
		ttl:    cfg.Recommend.SessionTTL,
	}, nil
}

// sessionKey 生成會話鍵
func sessionKey(id string) string {
	return fmt.Sprintf("recommend:session:%s", id)
}

// Get 取得會話
func (r *redisSessionStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, common.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// Put 寫入會話並重設存活時間
func (r *redisSessionStore) Put(ctx context.Context, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.client.Set(ctx, sessionKey(session.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}
	return nil
}

// Close 關閉儲存
func (r *redisSessionStore) Close() error {
	return r.client.Close()
}
