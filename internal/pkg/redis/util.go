package redis

import (
	"Quill/internal/pkg/consts"
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// SetWithExpiration 设置键值对并设置过期时间
func SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return Rdb.Set(ctx, key, value, expiration).Err()
}

// GetValue 获取字符串类型的值
func GetValue(ctx context.Context, key string) (string, error) {
	value, err := Rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

const lockRetryInterval = 200 * time.Millisecond

// TryLock 获取分布式锁，retryTimes 为 -1 时一直重试直到 ctx 结束
func TryLock(ctx context.Context, key string, value interface{}, expiration time.Duration, retryTimes int) (bool, error) {
	for i := 0; i <= retryTimes || retryTimes == -1; i++ {
		success, err := Rdb.SetNX(ctx, key, value, expiration).Result()
		if err != nil {
			return false, err
		}
		if success {
			return true, nil
		}
		if i == retryTimes {
			break
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(lockRetryInterval):
		}
	}
	return false, nil
}

// UnLock 释放锁
func UnLock(ctx context.Context, key string, value interface{}) {
	Rdb.Eval(ctx, "if redis.call('get', KEYS[1]) == ARGV[1] then return redis.call('del', KEYS[1]) else return 0 end", []string{key}, value)
}

// TokenBlacklist 已注销 token 的签名集合
type TokenBlacklist interface {
	Revoke(ctx context.Context, signature string, ttl time.Duration) error
	IsRevoked(ctx context.Context, signature string) (bool, error)
}

type tokenBlacklistImpl struct{}

// NewTokenBlacklist 基于全局 Rdb，Redis 未启用时返回 nil
func NewTokenBlacklist() TokenBlacklist {
	if Rdb == nil {
		return nil
	}
	return &tokenBlacklistImpl{}
}

// Revoke 记录到 token 过期为止
func (s *tokenBlacklistImpl) Revoke(ctx context.Context, signature string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return SetWithExpiration(ctx, consts.RevokedTokenKey+signature, 1, ttl)
}

func (s *tokenBlacklistImpl) IsRevoked(ctx context.Context, signature string) (bool, error) {
	value, err := GetValue(ctx, consts.RevokedTokenKey+signature)
	if err != nil {
		return false, err
	}
	return value != "", nil
}
