package memory

import (
	"context"
	"sync"

	"github.com/xiebiao/bookreview/internal/domain/user"
	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

// UserStore 进程内用户存储
// 设计说明：并发注册共享同一张映射，唯一性检查和写入必须在同一把锁内完成
type UserStore struct {
	mu    sync.Mutex
	users map[string]*user.User
}

// NewUserStore 创建用户存储
func NewUserStore() *UserStore {
	return &UserStore{
		users: make(map[string]*user.User),
	}
}

// Create 创建用户
// 用户名已存在时返回ErrUserDuplicate
func (s *UserStore) Create(ctx context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.Username]; ok {
		return apperrors.ErrUserDuplicate
	}

	clone := *u
	s.users[u.Username] = &clone
	return nil
}

// FindByUsername 根据用户名查找用户
func (s *UserStore) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}

	clone := *u
	return &clone, nil
}
