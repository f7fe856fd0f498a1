package cache

import (
	"context"
	"errors"
	"time"

	"studyglobe/internal/observability"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// GetJSON looks the key up and unmarshals it into dest.
// Returns (true, nil) if found, (false, nil) on a miss.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	var payload []byte
	if client != nil {
		s, err := client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			observability.CacheLookups.WithLabelValues("redis", "miss").Inc()
			return false, nil
		}
		if err != nil {
			return false, err
		}
		observability.CacheLookups.WithLabelValues("redis", "hit").Inc()
		payload = s
	} else {
		p, ok := localGet(key)
		if !ok {
			observability.CacheLookups.WithLabelValues("local", "miss").Inc()
			return false, nil
		}
		observability.CacheLookups.WithLabelValues("local", "hit").Inc()
		payload = p
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and stores it under key with ttl.
func SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if client == nil {
		localSet(key, b, ttl)
		return nil
	}
	return client.Set(ctx, key, b, ttl).Err()
}

// Aside serves key from the cache, or calls fetch to populate dest and stores
// the result with ttl. Cache read failures fall through to fetch.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	if found, err := GetJSON(ctx, key, dest); err == nil && found {
		return nil
	}

	if err := fetch(); err != nil {
		return err
	}

	_ = SetJSON(ctx, key, dest, ttl)
	return nil
}

// Invalidate removes key from whichever tier is active.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
		return
	}
	localDel(key)
}
