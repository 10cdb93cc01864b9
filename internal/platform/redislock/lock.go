package redislock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/yungbote/medvalidate-backend/internal/platform/logger"
)

var ErrNotAcquired = errors.New("lock held by another caller")

// Locker hands out short-lived exclusive leases keyed by string.
type Locker interface {
	// Acquire returns a release func, or ErrNotAcquired when the key is taken.
	Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error)
}

type redisLocker struct {
	log    *logger.Logger
	rdb    *redis.Client
	prefix string
}

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// NewRedisLocker dials addr and verifies it with a PING.
func NewRedisLocker(log *logger.Logger, addr string, prefix string) (Locker, error) {
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return newRedisLockerWithClient(log, rdb, prefix), nil
}

func newRedisLockerWithClient(log *logger.Logger, rdb *redis.Client, prefix string) *redisLocker {
	if prefix == "" {
		prefix = "medvalidate:lock:"
	}
	return &redisLocker{log: log.With("service", "RedisLocker"), rdb: rdb, prefix: prefix}
}

func (l *redisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	full := l.prefix + key
	token := uuid.NewString()
	ok, err := l.rdb.SetNX(ctx, full, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("redis setnx: %w", err)
	}
	if !ok {
		return nil, ErrNotAcquired
	}
	return func() {
		// Detached from ctx so a cancelled request still releases its lease.
		rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(rctx, l.rdb, []string{full}, token).Err(); err != nil {
			l.log.Warn("lock release failed", "key", key, "error", err)
		}
	}, nil
}

type localLocker struct {
	mu     sync.Mutex
	leases map[string]time.Time
}

// NewLocalLocker is the single-process fallback used when Redis is not configured.
func NewLocalLocker() Locker {
	return &localLocker{leases: map[string]time.Time{}}
}

func (l *localLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now()
	if exp, ok := l.leases[key]; ok && now.Before(exp) {
		return nil, ErrNotAcquired
	}
	exp := now.Add(ttl)
	l.leases[key] = exp
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if cur, ok := l.leases[key]; ok && cur.Equal(exp) {
			delete(l.leases, key)
		}
	}, nil
}
