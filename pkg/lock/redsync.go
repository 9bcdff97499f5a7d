// Package lock provides the redis backed toggle.Locker.
package lock

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/go-redsync/redsync/v4"
	goredis "github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"VidTube.com/pkg/toggle"
)

const (
	keyPrefix     = "vidtube:lock:"
	defaultExpiry = 5 * time.Second
	defaultTries  = 16
	retryDelay    = 50 * time.Millisecond
)

type RedisLocker struct {
	rs     *redsync.Redsync
	expiry time.Duration
}

var _ toggle.Locker = (*RedisLocker)(nil)

func NewRedisLocker(client redis.UniversalClient, expiry time.Duration) *RedisLocker {
	if expiry <= 0 {
		expiry = defaultExpiry
	}
	return &RedisLocker{
		rs:     redsync.New(goredis.NewPool(client)),
		expiry: expiry,
	}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	m := l.rs.NewMutex(keyPrefix+key,
		redsync.WithExpiry(l.expiry),
		redsync.WithTries(defaultTries),
		redsync.WithRetryDelay(retryDelay),
	)
	if err := m.LockContext(ctx); err != nil {
		return nil, errors.Wrapf(err, "acquire %s", key)
	}
	return func() {
		// the request context may already be done, release on a fresh one
		if ok, err := m.UnlockContext(context.Background()); err != nil || !ok {
			hlog.Warnf("release lock %s: ok=%v err=%v", key, ok, err)
		}
	}, nil
}

// NewRedisClient connects to redis and pings it once.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(err, "ping redis %s", addr)
	}
	hlog.Infof("Connect Redis Success: %s", addr)
	return client, nil
}
