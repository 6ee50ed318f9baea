package httpx

import (
	"context"
	"fmt"
	"time"

	"log/slog"

	redis "github.com/redis/go-redis/v9"
)

const (
	redisSignupPrefix = "accounts:signup:"
	redisDialTimeout  = 2 * time.Second
	redisOpTimeout    = 250 * time.Millisecond
)

type redisSignupLimiter struct {
	client    *redis.Client
	logger    *slog.Logger
	perMinute int
}

// NewRedisSignupLimiter shares sign-up windows across replicas through Redis.
// Redis failures let the request through.
func NewRedisSignupLimiter(addr, password string, db, perMinute int, logger *slog.Logger) (SignupLimiter, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db, DialTimeout: redisDialTimeout})
	ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &redisSignupLimiter{client: client, logger: logger, perMinute: perMinute}, nil
}

func (l *redisSignupLimiter) Allow(ctx context.Context, ip string) signupQuota {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	key := redisSignupPrefix + ip
	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, signupWindow)
	ttl := pipe.PTTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		l.logger.Error("signup limiter unavailable", "ip", ip, "error", err)
		return signupQuota{limit: l.perMinute, reset: time.Now().Add(signupWindow)}
	}
	left := ttl.Val()
	if left <= 0 {
		left = signupWindow
	}
	return signupQuota{limit: l.perMinute, used: int(incr.Val()), reset: time.Now().Add(left)}
}

func (l *redisSignupLimiter) Close() error {
	return l.client.Close()
}
