package gateway

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"job-marketplace-api/pkg/logger"

	"github.com/labstack/echo"
	"github.com/redis/go-redis/v9"
)

const redisCallTimeout = 250 * time.Millisecond

type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) bool
}

// MemoryLimiter is a fixed-window counter per key, local to one gateway
// process.
type MemoryLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rateBucket
	now     func() time.Time
}

type rateBucket struct {
	count     int
	windowEnd time.Time
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{buckets: make(map[string]*rateBucket), now: time.Now}
}

func (r *MemoryLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	bucket, ok := r.buckets[key]
	if !ok || !now.Before(bucket.windowEnd) {
		r.buckets[key] = &rateBucket{count: 1, windowEnd: now.Add(window)}
		r.evictExpired(now)
		return true
	}
	if bucket.count >= limit {
		return false
	}
	bucket.count++

	return true
}

// evictExpired drops finished windows once the map grows, so one-off clients
// do not accumulate.
func (r *MemoryLimiter) evictExpired(now time.Time) {
	if len(r.buckets) < 1024 {
		return
	}
	for key, bucket := range r.buckets {
		if !now.Before(bucket.windowEnd) {
			delete(r.buckets, key)
		}
	}
}

const rateLimitScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`

// RedisLimiter shares the window between gateway replicas. It lets requests
// through when Redis is unreachable.
type RedisLimiter struct {
	client redis.UniversalClient
	script *redis.Script
	logger *logger.Logger
}

func NewRedisLimiter(client redis.UniversalClient, l *logger.Logger) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		script: redis.NewScript(rateLimitScript),
		logger: l,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) bool {
	ttl := window.Milliseconds()
	if ttl <= 0 {
		ttl = 1
	}

	ctx, cancel := context.WithTimeout(ctx, redisCallTimeout)
	defer cancel()

	allowed, err := l.script.Run(ctx, l.client, []string{"ratelimit:" + key}, ttl, limit).Int64()
	if err != nil {
		l.logger.Warn("rate limiter unavailable, letting request through", "error", err)
		return true
	}

	return allowed == 1
}

// RateLimit rejects a client IP with 429 once it used up limit requests in the
// current window. A non-positive limit disables the check.
func RateLimit(limiter Limiter, limit int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if limiter == nil || limit <= 0 || window <= 0 {
				return next(c)
			}

			if !limiter.Allow(c.Request().Context(), c.RealIP(), limit, window) {
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				return c.JSON(http.StatusTooManyRequests, errorResponse{"Too many requests"})
			}

			return next(c)
		}
	}
}
