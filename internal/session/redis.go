package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pkgredis "github.com/cellar-club/tasting/internal/pkg/redis"
)

const redisKeyPrefix = "tasting:memo:"

// RedisStore keeps memos as JSON strings that expire after ttl.
type RedisStore struct {
	client *pkgredis.Client
	ttl    time.Duration
}

func NewRedisStore(client *pkgredis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// RedisKey is the key a memo lives under.
func RedisKey(sessionID, key string) string {
	return redisKeyPrefix + sessionID + ":" + key
}

func (s *RedisStore) Get(ctx context.Context, sessionID, key string) (*Memo, error) {
	if sessionID == "" {
		return nil, ErrNoSession
	}
	raw, ok, err := s.client.Get(ctx, RedisKey(sessionID, key))
	if err != nil {
		return nil, fmt.Errorf("redis get memo: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var memo Memo
	if err := json.Unmarshal([]byte(raw), &memo); err != nil {
		return nil, fmt.Errorf("decode memo: %w", err)
	}
	return &memo, nil
}

func (s *RedisStore) Put(ctx context.Context, sessionID, key string, memo Memo) error {
	if sessionID == "" {
		return ErrNoSession
	}
	b, err := json.Marshal(memo)
	if err != nil {
		return fmt.Errorf("encode memo: %w", err)
	}
	if err := s.client.Set(ctx, RedisKey(sessionID, key), string(b), s.ttl); err != nil {
		return fmt.Errorf("redis put memo: %w", err)
	}
	return nil
}
