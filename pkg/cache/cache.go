// Package cache stores rendered exports keyed by the content they were
// rendered from.
//
// Keys are content-addressed: the SHA-256 of a graph's .vsg text combined
// with the export format and options. Re-exporting an unchanged graph with
// the same options is a cache hit no matter which file or document it came
// from.
//
//	c, err := cache.NewFileCache(dir)
//	key := cache.NewDefaultKeyer().ExportKey(cache.Hash(vsg), cache.ExportKeyOpts{Format: "svg"})
//	if data, hit, _ := c.Get(ctx, key); hit {
//	    return data, nil
//	}
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/visigraph/pkg/settings"
)

// DefaultTTL is how long exports stay cached when no TTL is configured.
const DefaultTTL = 24 * time.Hour

// Cache is the interface for cache backends.
type Cache interface {
	// Get returns the cached value. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. A missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every entry.
	Clear(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return fmt.Sprintf("%s:%s", prefix, Hash(data))
}

// keyType returns the prefix of a key, used to label hook events.
func keyType(key string) string {
	if i := strings.IndexByte(key, ':'); i >= 0 {
		return key[:i]
	}
	return key
}

// New returns the cache cfg describes: a [NullCache] when disabled,
// otherwise a [FileCache].
func New(cfg settings.Cache) (Cache, error) {
	if cfg.Disabled {
		return NewNullCache(), nil
	}
	return NewFileCache(cfg.Dir)
}

// TTL returns the configured entry lifetime, or [DefaultTTL].
func TTL(cfg settings.Cache) time.Duration {
	if cfg.TTLHours <= 0 {
		return DefaultTTL
	}
	return time.Duration(cfg.TTLHours * float64(time.Hour))
}
