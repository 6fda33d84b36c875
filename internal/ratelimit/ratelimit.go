// Package ratelimit is a fixed-window request limiter backed by Redis.
package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/MyelinBots/connectmap-go/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "ratelimit"

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed   bool
	Remaining int
	ResetIn   time.Duration
}

type Limiter interface {
	Allow(ctx context.Context, scope, subject string) (Decision, error)
}

type RedisLimiter struct {
	client redis.UniversalClient
	limit  int
	window time.Duration
	log    *zap.Logger
}

func NewRedisLimiter(client redis.UniversalClient, limit int, window time.Duration, log *zap.Logger) *RedisLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &RedisLimiter{client: client, limit: limit, window: window, log: log}
}

// New returns a limiter for cfg, or a no-op limiter when Redis is not configured.
func New(ctx context.Context, rcfg config.RedisConfig, hcfg config.HTTPConfig, log *zap.Logger) (Limiter, func() error, error) {
	if rcfg.Addr == "" || hcfg.RateLimit <= 0 {
		log.Info("rate limiting disabled")
		return Noop{}, func() error { return nil }, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     rcfg.Addr,
		Password: rcfg.Password,
		DB:       rcfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis ping: %w", err)
	}
	log.Info("rate limiting enabled",
		zap.String("redis", rcfg.Addr),
		zap.Int("limit", hcfg.RateLimit),
		zap.Duration("window", hcfg.RateLimitWindow),
	)
	return NewRedisLimiter(client, hcfg.RateLimit, hcfg.RateLimitWindow, log), client.Close, nil
}

func (l *RedisLimiter) key(scope, subject string, now time.Time) string {
	bucket := now.UnixNano() / int64(l.window)
	return fmt.Sprintf("%s:%s:%s:%s", keyPrefix, scope, subject, strconv.FormatInt(bucket, 10))
}

// Allow counts one hit in the current window. The counter key expires with
// the window so abandoned subjects cost nothing.
func (l *RedisLimiter) Allow(ctx context.Context, scope, subject string) (Decision, error) {
	now := time.Now()
	key := l.key(scope, subject, now)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{Allowed: true, Remaining: l.limit}, fmt.Errorf("rate limit %s: %w", scope, err)
	}

	n := int(incr.Val())
	d := Decision{
		Allowed:   n <= l.limit,
		Remaining: max(0, l.limit-n),
		ResetIn:   l.window - time.Duration(now.UnixNano()%int64(l.window)),
	}
	if !d.Allowed {
		l.log.Debug("rate limited", zap.String("scope", scope), zap.String("subject", subject), zap.Int("hits", n))
	}
	return d, nil
}

// Noop allows everything.
type Noop struct{}

func (Noop) Allow(context.Context, string, string) (Decision, error) {
	return Decision{Allowed: true, Remaining: -1}, nil
}
