package user

import (
	"context"
)

// Repository 用户仓储接口
// 设计说明：
// 1. 接口定义在domain层（依赖倒置原则），实现在infrastructure层
// 2. 当前实现是带锁的进程内映射；并发注册的唯一性由实现的锁保证
type Repository interface {
	// Create 创建用户
	// 如果用户名已存在，返回errors.ErrUserDuplicate
	Create(ctx context.Context, user *User) error

	// FindByUsername 根据用户名查找用户
	// 如果不存在，返回errors.ErrUserNotFound
	FindByUsername(ctx context.Context, username string) (*User, error)
}
