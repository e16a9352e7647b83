package memory

import (
	"context"
	"sync"
	"time"

	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

// sessionEntry 一条会话记录
// expiresAt随凭证签发时记录，属于凭证的元数据；
// 进程内实现不做独立的过期检查——原设计中会话放行不看时限
type sessionEntry struct {
	username  string
	expiresAt time.Time
}

// SessionStore 进程内会话注册表
// 设计说明：
// 1. 登录时建立 凭证 → 用户名 的关联，登出时删除
// 2. 每个登录连接各持一条会话；同一用户再次登录产生新凭证、新会话
// 3. 共享映射加锁，并发登录/登出不产生数据竞争
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]sessionEntry
}

// NewSessionStore 创建会话注册表
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]sessionEntry),
	}
}

// Save 保存会话
func (s *SessionStore) Save(ctx context.Context, credential, username string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[credential] = sessionEntry{
		username:  username,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Username 根据凭证解析用户名
// 凭证未登记时返回ErrUnauthenticated
func (s *SessionStore) Username(ctx context.Context, credential string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.sessions[credential]
	if !ok {
		return "", apperrors.ErrUnauthenticated
	}
	return entry.username, nil
}

// Delete 删除会话（登出）
func (s *SessionStore) Delete(ctx context.Context, credential string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, credential)
	return nil
}
