// Package ratelimit provides redis-backed per-endpoint request rate limiting.
package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// fixedWindowScript increments the window counter and sets its expiry on
// first use, atomically, so concurrent requests cannot observe a counter
// without a TTL.
const fixedWindowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`

// Limiter enforces per-client, per-endpoint request limits against redis.
// A nil Limiter, a disabled config, or an unreachable redis all fail open:
// rate limiting protects capacity, it must never take the API down with it.
type Limiter struct {
	client *redis.Client
	script *redis.Script
	config *Config
}

// NewLimiter creates a limiter backed by the given redis client. A nil
// client yields a no-op limiter.
func NewLimiter(client *redis.Client, config *Config) *Limiter {
	if client == nil || config == nil || !config.Enabled {
		return nil
	}
	return &Limiter{
		client: client,
		script: redis.NewScript(fixedWindowScript),
		config: config,
	}
}

// Allow reports whether the request identified by clientID, path and method
// may proceed.
func (l *Limiter) Allow(ctx context.Context, clientID, path, method string) bool {
	if l == nil {
		return true
	}

	limit := l.config.DefaultLimit
	window := l.config.DefaultWindow
	if endpoint := MatchEndpoint(path, method, l.config.EndpointConfigs); endpoint != nil {
		if endpoint.Limit == 0 {
			return true // unlimited endpoint
		}
		limit = endpoint.Limit
		window = endpoint.Window
	}
	if limit <= 0 || window <= 0 {
		return true
	}

	key := fmt.Sprintf("ratelimit:%s:%s:%s", clientID, method, bucketPath(path))
	ttl := window.Milliseconds()
	if ttl <= 0 {
		ttl = 1
	}

	ctx, cancel := context.WithTimeout(ctx, 250*time.Millisecond)
	defer cancel()
	allowed, err := l.script.Run(ctx, l.client, []string{key}, ttl, limit).Int64()
	if err != nil {
		return true
	}
	return allowed == 1
}

// bucketPath collapses id segments so every /applications/{id}/withdraw
// shares one counter per client rather than one per record.
func bucketPath(path string) string {
	parts := strings.Split(path, "/")
	if len(parts) > 2 {
		return "/" + parts[1] + "/"
	}
	return path
}
