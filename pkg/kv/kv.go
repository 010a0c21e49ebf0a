package kv

import "context"

// Substrate is the synchronous key-value persistence boundary behind the
// document store. Implementations namespace every key under a fixed prefix;
// Get, Set, and Delete take logical keys, while ForEach visits only keys in
// the namespace and reports each one exactly as stored, prefix included, so
// usage estimates reflect real storage cost.
type Substrate interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	ForEach(ctx context.Context, fn func(key, value string) error) error
	Ping(ctx context.Context) error
	Close() error
}
