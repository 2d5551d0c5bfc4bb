package tokenblacklist

import (
	"context"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Provider - хранилище отозванных токенов (по jti)
type Provider interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	// RevokeIfAbsent отзывает токен одной операцией, false - токен уже был отозван
	RevokeIfAbsent(ctx context.Context, jti string, ttl time.Duration) (bool, error)
}

var Instance Provider

// NewHandler - при rdb == nil отозванные токены хранятся в памяти процесса
func NewHandler(rdb *goredis.Client) {
	if rdb == nil {
		Instance = NewMemory(time.Now)
		return
	}
	Instance = NewRedis(rdb)
}

const blacklistPrefix = "token:blacklist:"

func NewRedis(rdb *goredis.Client) Provider {
	return &redisImpl{rdb: rdb}
}

type redisImpl struct {
	rdb *goredis.Client
}

func (i *redisImpl) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return i.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

func (i *redisImpl) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := i.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (i *redisImpl) RevokeIfAbsent(ctx context.Context, jti string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		return false, nil
	}
	return i.rdb.SetNX(ctx, blacklistPrefix+jti, "1", ttl).Result()
}

func NewMemory(now func() time.Time) Provider {
	return &memoryImpl{
		now:     now,
		revoked: map[string]time.Time{},
	}
}

type memoryImpl struct {
	mu      sync.Mutex
	now     func() time.Time
	revoked map[string]time.Time // [jti]истекает
}

func (i *memoryImpl) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	i.cleanup()
	i.revoked[jti] = i.now().Add(ttl)
	return nil
}

func (i *memoryImpl) IsRevoked(_ context.Context, jti string) (bool, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	expiresAt, ok := i.revoked[jti]
	if !ok {
		return false, nil
	}
	if !i.now().Before(expiresAt) {
		delete(i.revoked, jti)
		return false, nil
	}
	return true, nil
}

func (i *memoryImpl) RevokeIfAbsent(_ context.Context, jti string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		return false, nil
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	i.cleanup()
	if _, ok := i.revoked[jti]; ok {
		return false, nil
	}
	i.revoked[jti] = i.now().Add(ttl)
	return true, nil
}

func (i *memoryImpl) cleanup() {
	now := i.now()
	for jti, expiresAt := range i.revoked {
		if !now.Before(expiresAt) {
			delete(i.revoked, jti)
		}
	}
}
