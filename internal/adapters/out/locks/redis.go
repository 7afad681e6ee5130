package locks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fleetdispatch/internal/core/domain/model/kernel"
	"fleetdispatch/internal/core/ports"
	"fleetdispatch/internal/pkg/errs"

	backend "github.com/redis/go-redis/v9"
)

const (
	DefaultLockKey = "fleetdispatch:lock:execution"
	DefaultLockTTL = 30 * time.Second

	releaseTimeout = 2 * time.Second
)

// releaseScript deletes the key only while it still carries our token, so an
// expired holder never frees a lock someone else has taken since.
var releaseScript = backend.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLock is a try-lock stored under one Redis key with SET NX PX.
// The TTL bounds how long a crashed holder can block the fleet.
type RedisLock struct {
	client backend.UniversalClient
	key    string
	ttl    time.Duration
	logger *slog.Logger
}

var _ ports.ExecutionLock = (*RedisLock)(nil)

func NewRedisLock(client backend.UniversalClient, key string, ttl time.Duration, logger *slog.Logger) (*RedisLock, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("client")
	}
	if key == "" {
		key = DefaultLockKey
	}
	if ttl <= 0 {
		ttl = DefaultLockTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisLock{
		client: client,
		key:    key,
		ttl:    ttl,
		logger: logger.With("component", "redis-lock"),
	}, nil
}

func (l *RedisLock) TryAcquire(ctx context.Context) (func(), error) {
	token := kernel.NewUUID().String()

	acquired, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("redis error acquiring lock: %w", err)
	}
	if !acquired {
		return nil, errs.NewConflictError("execution lock")
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
			defer cancel()
			if err := releaseScript.Run(releaseCtx, l.client, []string{l.key}, token).Err(); err != nil {
				l.logger.Error("failed to release execution lock", "key", l.key, "error", err)
			}
		})
	}, nil
}
