package review

import (
	"context"

	"github.com/xiebiao/bookreview/internal/domain/review"
)

// GetReviewsUseCase 书评查询用例（无需登录）
type GetReviewsUseCase struct {
	reviewService review.Service
}

// NewGetReviewsUseCase 创建书评查询用例
func NewGetReviewsUseCase(reviewService review.Service) *GetReviewsUseCase {
	return &GetReviewsUseCase{
		reviewService: reviewService,
	}
}

// Execute 执行书评查询
// 图书不存在是404错误；图书存在但无书评是成功（空映射）
func (uc *GetReviewsUseCase) Execute(ctx context.Context, isbn string) (*ReviewsResponse, error) {
	reviews, err := uc.reviewService.GetReviews(ctx, isbn)
	if err != nil {
		return nil, err
	}

	return &ReviewsResponse{
		ISBN:    isbn,
		Reviews: reviews,
	}, nil
}
