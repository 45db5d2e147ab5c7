package cache

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/foodikal/ny-backend/internal/config"
	"github.com/foodikal/ny-backend/pkg/logger"
)

// Limit is a fixed-window quota: at most Max requests per Window.
type Limit struct {
	Max    int
	Window time.Duration
}

// Named scopes used by the API layer. Unknown scopes are never limited.
const (
	ScopeAuthFail      = "auth_fail"
	ScopeAdmin         = "admin"
	ScopeCreateOrder   = "create_order"
	ScopeValidatePromo = "validate_promo"
	ScopePublicAPI     = "public_api"
)

var limits = map[string]Limit{
	ScopeAuthFail:      {Max: 5, Window: 15 * time.Minute},
	ScopeAdmin:         {Max: 60, Window: time.Minute},
	ScopeCreateOrder:   {Max: 10, Window: time.Minute},
	ScopeValidatePromo: {Max: 30, Window: time.Minute},
	ScopePublicAPI:     {Max: 100, Window: time.Minute},
}

// RateLimiter throttles request scopes per caller key (usually the client
// IP). Allow reports whether the request may proceed; a limiter backend
// outage fails open so the store never takes the API down with it.
type RateLimiter interface {
	Allow(ctx context.Context, scope, key string) bool
	Blocked(ctx context.Context, scope, key string) bool
	Reset(ctx context.Context, scope, key string)
}

type redisRateLimiter struct {
	client *redis.Client
}

type noopRateLimiter struct{}

func NewRateLimiter(cfg config.CacheConfig) (RateLimiter, error) {
	if !cfg.Enabled {
		return &noopRateLimiter{}, nil
	}

	client, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}
	return &redisRateLimiter{client: client}, nil
}

func NewNoopRateLimiter() RateLimiter {
	return &noopRateLimiter{}
}

func (r *redisRateLimiter) Allow(ctx context.Context, scope, key string) bool {
	limit, ok := limits[scope]
	if !ok {
		return true
	}

	redisKey := stateKey(scope, key)
	value, err := r.client.Get(ctx, redisKey).Result()
	if err != nil && err != redis.Nil {
		logger.Log.Warn().Err(err).Str("scope", scope).Msg("rate limiter read failed, allowing request")
		return true
	}

	next, ttl, allowed := nextState(value, time.Now(), limit)
	if !allowed {
		return false
	}
	if err := r.client.Set(ctx, redisKey, next, ttl).Err(); err != nil {
		logger.Log.Warn().Err(err).Str("scope", scope).Msg("rate limiter write failed")
	}
	return true
}

// Blocked reports whether the key already sits at its quota without spending
// another unit. Used to refuse auth attempts from a locked-out caller.
func (r *redisRateLimiter) Blocked(ctx context.Context, scope, key string) bool {
	limit, ok := limits[scope]
	if !ok {
		return false
	}
	value, err := r.client.Get(ctx, stateKey(scope, key)).Result()
	if err != nil {
		return false
	}
	count, start, ok := parseState(value)
	return ok && time.Since(start) < limit.Window && count >= limit.Max
}

func (r *redisRateLimiter) Reset(ctx context.Context, scope, key string) {
	if err := r.client.Del(ctx, stateKey(scope, key)).Err(); err != nil {
		logger.Log.Warn().Err(err).Str("scope", scope).Msg("rate limiter reset failed")
	}
}

func (n *noopRateLimiter) Allow(ctx context.Context, scope, key string) bool   { return true }
func (n *noopRateLimiter) Blocked(ctx context.Context, scope, key string) bool { return false }
func (n *noopRateLimiter) Reset(ctx context.Context, scope, key string)        {}

func stateKey(scope, key string) string {
	return fmt.Sprintf("ratelimit:%s:%s", scope, key)
}

// nextState applies one request to a stored "count:windowStartUnix" value and
// returns the value to store, its TTL, and whether the request is allowed. A
// missing or malformed value starts a fresh window.
func nextState(value string, now time.Time, l Limit) (string, time.Duration, bool) {
	count, start, ok := parseState(value)
	if !ok || now.Sub(start) >= l.Window {
		return fmt.Sprintf("1:%d", now.Unix()), l.Window, true
	}
	if count >= l.Max {
		return value, 0, false
	}
	remaining := l.Window - now.Sub(start)
	if remaining < time.Second {
		remaining = time.Second
	}
	return fmt.Sprintf("%d:%d", count+1, start.Unix()), remaining, true
}

func parseState(value string) (count int, start time.Time, ok bool) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, time.Time{}, false
	}
	count, err := strconv.Atoi(parts[0])
	if err != nil || count < 1 {
		return 0, time.Time{}, false
	}
	unix, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, time.Time{}, false
	}
	return count, time.Unix(unix, 0), true
}
