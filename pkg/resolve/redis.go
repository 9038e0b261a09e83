package resolve

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openpathway/pathmerge/pkg/logger"
	"github.com/openpathway/pathmerge/pkg/pathway"

	"github.com/redis/go-redis/v9"
)

// Cached decorates a Resolver with a redis cache. Misses are cached as well,
// since most unresolvable candidates repeat across pathways of the same
// source. Cache failures degrade to the inner resolver and never fail a
// lookup.
type Cached struct {
	inner  Resolver
	client *redis.Client
	ttl    time.Duration
}

// NewCached creates a caching resolver around inner. Entries expire after
// ttl; a ttl of zero keeps them until eviction.
func NewCached(inner Resolver, client *redis.Client, ttl time.Duration) *Cached {
	return &Cached{
		inner:  inner,
		client: client,
		ttl:    ttl,
	}
}

// NewRedisClient creates a redis client from a redis:// URL.
func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	return redis.NewClient(opts), nil
}

type cacheEntry struct {
	Identity Identity `json:"identity"`
	OK       bool     `json:"ok"`
}

// Resolve returns the cached resolution for the candidate set, falling back
// to the inner resolver and writing the result through.
func (c *Cached) Resolve(ctx context.Context, xrefs []pathway.Xref) (Identity, bool, error) {
	key := cacheKey(xrefs)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var entry cacheEntry
		if unmarshalErr := json.Unmarshal(data, &entry); unmarshalErr == nil {
			return entry.Identity, entry.OK, nil
		}
		logger.Debug("[Resolve] Dropping corrupt cache entry", "key", key)
	} else if !errors.Is(err, redis.Nil) {
		logger.Debug("[Resolve] Cache read failed", "key", key, "err", err)
	}

	identity, ok, err := c.inner.Resolve(ctx, xrefs)
	if err != nil {
		return Identity{}, false, err
	}

	if entry, marshalErr := json.Marshal(cacheEntry{Identity: identity, OK: ok}); marshalErr == nil {
		if setErr := c.client.Set(ctx, key, entry, c.ttl).Err(); setErr != nil {
			logger.Debug("[Resolve] Cache write failed", "key", key, "err", setErr)
		}
	}
	return identity, ok, nil
}

func cacheKey(xrefs []pathway.Xref) string {
	parts := make([]string, 0, len(xrefs))
	for _, xref := range orderXrefs(xrefs) {
		parts = append(parts, strings.ToLower(xref.Namespace)+":"+xref.Identifier)
	}
	return "resolve:" + strings.Join(parts, "|")
}
