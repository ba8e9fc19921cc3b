package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the subset of go-redis the stores use. *redis.Client satisfies it.
type Client interface {
	redis.Cmdable
	Close() error
}

// Nil is returned by Get when the key does not exist
var Nil = redis.Nil
