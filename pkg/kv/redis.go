package kv

import (
	"context"
	"errors"
	"fmt"
	"sort"

	goredis "github.com/redis/go-redis/v9"
	"github.com/seedkitapp/seedkit-backend/pkg/redis"
)

// Redis persists the namespace in a redis keyspace via prefix SCAN.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis returns a redis-backed substrate namespaced under prefix.
func NewRedis(client *redis.Client, prefix string) (*Redis, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &Redis{client: client, prefix: prefix}, nil
}

// Get returns the value stored under the logical key.
func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, r.prefix+key)
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading key %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores the value under the logical key without expiry.
func (r *Redis) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.prefix+key, value, 0); err != nil {
		return fmt.Errorf("writing key %q: %w", key, err)
	}
	return nil
}

// Delete removes the logical key if present.
func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key); err != nil {
		return fmt.Errorf("deleting key %q: %w", key, err)
	}
	return nil
}

// ForEach visits every namespaced key in lexical order. Keys deleted between
// the scan and the read are skipped.
func (r *Redis) ForEach(ctx context.Context, fn func(key, value string) error) error {
	keys, err := r.client.ScanKeys(ctx, r.prefix+"*")
	if err != nil {
		return fmt.Errorf("scanning namespace: %w", err)
	}
	sort.Strings(keys)
	for _, key := range keys {
		value, err := r.client.Get(ctx, key)
		if errors.Is(err, goredis.Nil) {
			continue
		}
		if err != nil {
			return fmt.Errorf("reading key %q: %w", key, err)
		}
		if err := fn(key, value); err != nil {
			return err
		}
	}
	return nil
}

// Ping verifies the connection.
func (r *Redis) Ping(ctx context.Context) error { return r.client.Ping(ctx) }

// Close shuts down the underlying client.
func (r *Redis) Close() error { return r.client.Close() }
