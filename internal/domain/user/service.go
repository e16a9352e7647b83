package user

import (
	"context"

	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

// Service 用户领域服务
// 设计说明：
// 1. Service封装注册/登录的业务规则校验，不处理HTTP
// 2. 依赖Repository接口，不依赖具体实现（依赖倒置）
type Service interface {
	// Register 用户注册
	Register(ctx context.Context, username, password string) (*User, error)

	// Login 用户登录
	Login(ctx context.Context, username, password string) (*User, error)
}

type service struct {
	repo Repository
}

// NewService 创建用户服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Register 用户注册
// 业务规则：
// 1. 用户名、密码均不能为空
// 2. 用户名全系统唯一（由Repository在锁内保证）
func (s *service) Register(ctx context.Context, username, password string) (*User, error) {
	if username == "" || password == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "用户名和密码不能为空")
	}

	u := NewUser(username, password)

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err // Repository已转换为ErrUserDuplicate
	}

	return u, nil
}

// Login 用户登录
// 业务规则：用户必须存在且密码相等
// 注意：用户不存在与密码错误对外是同一种错误，避免探测已注册用户名
func (s *service) Login(ctx context.Context, username, password string) (*User, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !u.MatchPassword(password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return u, nil
}
