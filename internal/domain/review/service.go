package review

import (
	"context"

	"github.com/xiebiao/bookreview/internal/domain/book"
	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

// Service 书评领域服务（Review Manager）
// 设计说明：
// 1. 变更范围严格限定为：一个已认证用户在一本图书下的一条书评
// 2. 所有权是隐式且绝对的——映射键永远来自认证身份，绝不取自客户端字段，
//    因此用户只可能改到自己名下的那条书评，不存在管理员越权通道
// 3. 前置校验失败时不触达存储，目录状态不变
type Service interface {
	// UpsertReview 写入或覆盖书评
	// 前置条件：username非空（否则未登录错误）、review非空、图书存在
	// 幂等：同文本重复调用效果不变，不同文本原地更新
	// 返回该图书当前完整的书评映射
	UpsertReview(ctx context.Context, isbn, username, review string) (map[string]string, error)

	// DeleteReview 删除当前用户的书评
	// 前置条件：username非空、图书存在、该用户有书评
	// 只移除username这一个键，返回删除后的书评映射
	DeleteReview(ctx context.Context, isbn, username string) (map[string]string, error)

	// GetReviews 查询图书的全部书评（无需登录）
	// 图书不存在返回ErrBookNotFound；无书评时返回空映射（成功，不是错误）
	GetReviews(ctx context.Context, isbn string) (map[string]string, error)
}

type service struct {
	catalog book.Repository
}

// NewService 创建书评领域服务
func NewService(catalog book.Repository) Service {
	return &service{catalog: catalog}
}

// UpsertReview 写入或覆盖书评
func (s *service) UpsertReview(ctx context.Context, isbn, username, review string) (map[string]string, error) {
	// 1. 鉴权前置：用户名必须已解析且非空
	if username == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	// 2. 参数校验：书评内容必须非空
	if review == "" {
		return nil, apperrors.ErrReviewRequired
	}

	// 3. 写入（存储在写锁内原子完成：图书不存在时返回ErrBookNotFound）
	return s.catalog.UpsertReview(ctx, isbn, username, review)
}

// DeleteReview 删除当前用户的书评
func (s *service) DeleteReview(ctx context.Context, isbn, username string) (map[string]string, error) {
	if username == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	return s.catalog.DeleteReview(ctx, isbn, username)
}

// GetReviews 查询图书的全部书评
func (s *service) GetReviews(ctx context.Context, isbn string) (map[string]string, error) {
	b, err := s.catalog.FindByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}

	reviews := b.CloneReviews()
	return reviews, nil
}
