// Package database owns the Redis connection backing the record store.
// The application stores each collection as one JSON document, so the
// connection is tuned for few, comparatively large GET/SET round trips
// rather than many small commands.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const connectTimeout = 5 * time.Second

// Seams for tests; connecting to a real server in unit tests is not an
// option.
var (
	newClient = redis.NewClient
	pingFn    = func(ctx context.Context, client *redis.Client) error {
		return client.Ping(ctx).Err()
	}
)

type RedisDB struct {
	Client *redis.Client
}

// Connect opens a Redis client and verifies it with a ping. Collection
// documents grow with the group's activity, so read and write timeouts
// are kept equal and generous; the pool stays small because every
// request funnels through a handful of document keys anyway.
func Connect(addr, password string, db int) (*RedisDB, error) {
	client := newClient(&redis.Options{
		Addr:            addr,
		Password:        password,
		DB:              db,
		DialTimeout:     connectTimeout,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		PoolSize:        8,
		MinIdleConns:    2,
		ConnMaxIdleTime: 5 * time.Minute,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := pingFn(ctx, client); err != nil {
		return nil, fmt.Errorf("connecting to redis at %s: %w", addr, err)
	}

	return &RedisDB{Client: client}, nil
}

func (r *RedisDB) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}

// Health pings the server; the health endpoints report 503 on failure.
func (r *RedisDB) Health(ctx context.Context) error {
	return pingFn(ctx, r.Client)
}
