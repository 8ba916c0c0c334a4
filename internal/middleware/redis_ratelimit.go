package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisRateLimiter shares fixed-window counters between instances through Redis.
// Redis failures let the request through.
type RedisRateLimiter struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
	logger *zap.Logger
	now    func() time.Time
}

func NewRedisRateLimiter(client *redis.Client, prefix string, limit int, window time.Duration, logger *zap.Logger) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		prefix: prefix,
		limit:  limit,
		window: window,
		logger: logger,
		now:    time.Now,
	}
}

// Allow counts one hit for key in the current window.
func (rl *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	bucket := rl.now().UnixNano() / int64(rl.window)
	redisKey := fmt.Sprintf("ratelimit:%s:%s:%d", rl.prefix, key, bucket)

	pipe := rl.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.PExpire(ctx, redisKey, rl.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, fmt.Errorf("rate limit counter: %w", err)
	}

	return incr.Val() <= int64(rl.limit), nil
}

func (rl *RedisRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, err := rl.Allow(r.Context(), clientIP(r))
		if err != nil {
			rl.logger.Warn("rate limiter unavailable, allowing request",
				zap.String("request_id", GetRequestID(r.Context())),
				zap.Error(err),
			)
		}
		if !allowed {
			writeError(w, http.StatusTooManyRequests, rateLimitedMessage)
			return
		}
		next.ServeHTTP(w, r)
	})
}
