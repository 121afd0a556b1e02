package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"kakao-fortune-bot/internal/domain"
)

// RedisFortuneCache는 domain.FortuneCache를 Redis로 구현한다.
// 만료 판정은 Redis TTL이 아니라 저장된 expires_at으로 읽기 시점에 수행한다.
// Postgres 백엔드와 동일한 지연 삭제 의미론을 유지하기 위해서다.
type RedisFortuneCache struct {
	client *redis.Client
}

var _ domain.FortuneCache = (*RedisFortuneCache)(nil)

// NewRedis는 Redis 운세 캐시를 생성한다.
func NewRedis(client *redis.Client) *RedisFortuneCache {
	return &RedisFortuneCache{client: client}
}

type cachePayload struct {
	Content   string    `json:"content"`
	ExpiresAt time.Time `json:"expires_at"`
}

func cacheKey(userID uuid.UUID, horizon domain.Horizon) string {
	return fmt.Sprintf("fortune:%s:%s", userID, horizon)
}

// Get은 저장된 운세를 반환한다. 만료된 항목은 삭제하고 미스로 처리한다.
func (c *RedisFortuneCache) Get(ctx context.Context, userID uuid.UUID, horizon domain.Horizon) (string, bool, error) {
	key := cacheKey(userID, horizon)
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	var payload cachePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", false, fmt.Errorf("캐시 항목 해석: %w", err)
	}
	entry := domain.CacheEntry{Content: payload.Content, ExpiresAt: payload.ExpiresAt}
	if entry.Expired(time.Now()) {
		_ = c.client.Del(ctx, key).Err()
		return "", false, nil
	}
	return entry.Content, true, nil
}

// Put은 기존 항목을 삭제하고 새 항목을 저장한다.
func (c *RedisFortuneCache) Put(ctx context.Context, userID uuid.UUID, horizon domain.Horizon, content string) error {
	key := cacheKey(userID, horizon)
	payload, err := json.Marshal(cachePayload{
		Content:   content,
		ExpiresAt: time.Now().Add(horizon.TTL()),
	})
	if err != nil {
		return fmt.Errorf("캐시 항목 직렬화: %w", err)
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	// 읽히지 않는 키가 영구히 남지 않도록 논리 TTL의 두 배로 물리 만료를 건다.
	if err := c.client.Set(ctx, key, payload, 2*horizon.TTL()).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
