// Package statestore keeps small JSON documents with an expiry. It backs the
// per-session search workspace and the measure catalog cache.
package statestore

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get for missing or expired keys.
var ErrNotFound = errors.New("statestore: key not found")

// Store saves values as JSON under a key. A ttl of zero means no expiry.
type Store interface {
	Get(ctx context.Context, key string, dst any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
