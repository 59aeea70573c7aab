package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"teamchat-client/model"

	"github.com/redis/go-redis/v9"
)

// Redis is the persisted cache backing warm starts across process restarts.
// Message snapshots expire after the configured TTL; unread counters and
// session keys do not expire.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func messagesKey(conversationID string) string { return "messages:" + conversationID }
func unreadKey(conversationID string) string   { return "unread:" + conversationID }

func (r *Redis) PutMessages(ctx context.Context, conversationID string, msgs []model.Message) error {
	data, err := json.Marshal(msgs)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, messagesKey(conversationID), data, r.ttl).Err()
}

func (r *Redis) GetMessages(ctx context.Context, conversationID string) ([]model.Message, error) {
	data, err := r.client.Get(ctx, messagesKey(conversationID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	var msgs []model.Message
	if err := json.Unmarshal(data, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *Redis) InvalidateMessages(ctx context.Context, conversationID string) error {
	return r.client.Del(ctx, messagesKey(conversationID)).Err()
}

func (r *Redis) IncrUnread(ctx context.Context, conversationID string) (int64, error) {
	return r.client.Incr(ctx, unreadKey(conversationID)).Result()
}

func (r *Redis) ResetUnread(ctx context.Context, conversationID string) error {
	return r.client.Del(ctx, unreadKey(conversationID)).Err()
}

func (r *Redis) Unread(ctx context.Context, conversationID string) (int64, error) {
	n, err := r.client.Get(ctx, unreadKey(conversationID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	return val, err
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
