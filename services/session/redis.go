// File: smarttravel/services/session/redis.go
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	credKeyPrefix     = "cred:"
	credChannelPrefix = "credEvents:"
	credTTL           = 30 * 24 * time.Hour
)

// credEvent is the cross-instance pub/sub payload. The origin id lets a
// subscriber skip echoes of its own writes.
type credEvent struct {
	Origin string `json:"origin"`
	Event  Event  `json:"event"`
}

// RedisStore is a CredentialStore shared across gateway instances. A
// change published by one instance reaches every watcher of the same
// scope, which is how the multi-tab signal of the web client is kept.
type RedisStore struct {
	client *redis.Client
	scope  string
	id     string
	logger *zap.Logger
}

// NewRedisStore builds a store for one client scope (the gateway
// session id).
func NewRedisStore(client *redis.Client, scope string, logger *zap.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		scope:  scope,
		id:     uuid.NewString(),
		logger: logger,
	}
}

func (r *RedisStore) key() string     { return credKeyPrefix + r.scope }
func (r *RedisStore) channel() string { return credChannelPrefix + r.scope }

func (r *RedisStore) Load(ctx context.Context) (*Credentials, error) {
	data, err := r.client.Get(ctx, r.key()).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}
	var creds Credentials
	if err := json.Unmarshal([]byte(data), &creds); err != nil {
		return nil, fmt.Errorf("failed to unmarshal credentials: %w", err)
	}
	return &creds, nil
}

func (r *RedisStore) Save(ctx context.Context, creds Credentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}
	if err := r.client.Set(ctx, r.key(), data, credTTL).Err(); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	r.publish(ctx, EventUpdated)
	return nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key()).Err(); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	r.publish(ctx, EventCleared)
	return nil
}

func (r *RedisStore) publish(ctx context.Context, ev Event) {
	payload, _ := json.Marshal(credEvent{Origin: r.id, Event: ev})
	if err := r.client.Publish(ctx, r.channel(), payload).Err(); err != nil {
		r.logger.Warn("failed to publish credential event", zap.Error(err))
	}
}

// Watch subscribes to credential events for this scope and forwards
// everything not originated by this store instance.
func (r *RedisStore) Watch(ctx context.Context, fn func(Event)) error {
	sub := r.client.Subscribe(ctx, r.channel())
	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var ev credEvent
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					r.logger.Warn("malformed credential event", zap.Error(err))
					continue
				}
				if ev.Origin == r.id {
					continue
				}
				fn(ev.Event)
			}
		}
	}()
	return nil
}
