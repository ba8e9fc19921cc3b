package kvstore

import (
	"context"
	stderrors "errors"

	"github.com/KirkDiggler/rpg-skillcheck/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-skillcheck/internal/redis"
)

// RedisConfig holds the configuration for the Redis store
type RedisConfig struct {
	Client redisclient.Client
	// KeyPrefix namespaces every key, e.g. "skillcheck:"
	KeyPrefix string
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	return nil
}

// Redis stores records as plain string values without expiry
type Redis struct {
	client redisclient.Client
	prefix string
}

// Ensure Redis implements Store
var _ Store = (*Redis)(nil)

// NewRedis creates a Redis-backed store
func NewRedis(cfg *RedisConfig) (*Redis, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Redis{
		client: cfg.Client,
		prefix: cfg.KeyPrefix,
	}, nil
}

// Get retrieves a record
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.InvalidArgument("key is required")
	}

	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if stderrors.Is(err, redisclient.Nil) {
			return nil, errors.NotFoundf("key %s not found", key)
		}
		return nil, errors.Storagef(err, "failed to read %s from redis", key)
	}

	return data, nil
}

// Set overwrites a record
func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return errors.InvalidArgument("key is required")
	}

	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return errors.Storagef(err, "failed to write %s to redis", key)
	}

	return nil
}

// Delete removes a record
func (r *Redis) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.InvalidArgument("key is required")
	}

	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return errors.Storagef(err, "failed to delete %s from redis", key)
	}

	return nil
}

// Close closes the redis client
func (r *Redis) Close() error {
	return r.client.Close()
}
