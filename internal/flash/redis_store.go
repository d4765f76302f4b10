package flash

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "flash:"
	entryTTL  = 15 * time.Minute
)

// RedisStore keeps flash messages in a Redis list per scope so they survive
// the post/redirect/get cycle across processes.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore builds a store over an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Add(ctx context.Context, scope string, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	key := keyPrefix + scope
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, payload)
	pipe.Expire(ctx, key, entryTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisStore) Pop(ctx context.Context, scope string) ([]Message, error) {
	key := keyPrefix + scope

	pipe := s.client.TxPipeline()
	items := pipe.LRange(ctx, key, 0, -1)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	raw, err := items.Result()
	if err != nil {
		return nil, err
	}

	msgs := make([]Message, 0, len(raw))
	for _, item := range raw {
		var msg Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			continue
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}
