package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

// SessionStore Redis会话注册表
// 设计说明：
// 1. 与进程内实现同接口（user.SessionRegistry），多实例部署时共享会话
// 2. Key设计：session:{credential}，值为用户名
// 3. 过期时间交给Redis的TTL，到期自动删除，无需手动清理
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore 创建Redis会话注册表
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func sessionKey(credential string) string {
	return fmt.Sprintf("session:%s", credential)
}

// Save 保存会话
func (s *SessionStore) Save(ctx context.Context, credential, username string, ttl time.Duration) error {
	if err := s.client.Set(ctx, sessionKey(credential), username, ttl).Err(); err != nil {
		return apperrors.WrapWithCode(err, apperrors.ErrCodeRedisError, "保存会话失败")
	}
	return nil
}

// Username 根据凭证解析用户名
// 凭证未登记（或TTL到期被删除）时返回ErrUnauthenticated
func (s *SessionStore) Username(ctx context.Context, credential string) (string, error) {
	username, err := s.client.Get(ctx, sessionKey(credential)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperrors.ErrUnauthenticated
		}
		return "", apperrors.WrapWithCode(err, apperrors.ErrCodeRedisError, "读取会话失败")
	}
	return username, nil
}

// Delete 删除会话（登出）
func (s *SessionStore) Delete(ctx context.Context, credential string) error {
	if err := s.client.Del(ctx, sessionKey(credential)).Err(); err != nil {
		return apperrors.WrapWithCode(err, apperrors.ErrCodeRedisError, "删除会话失败")
	}
	return nil
}
