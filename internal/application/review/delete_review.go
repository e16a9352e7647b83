package review

import (
	"context"

	"github.com/xiebiao/bookreview/internal/domain/review"
	"github.com/xiebiao/bookreview/pkg/metrics"
)

// DeleteReviewUseCase 书评删除用例
// 只删除当前认证用户名下的那一条，其他用户的书评原样保留
type DeleteReviewUseCase struct {
	reviewService review.Service
}

// NewDeleteReviewUseCase 创建书评删除用例
func NewDeleteReviewUseCase(reviewService review.Service) *DeleteReviewUseCase {
	return &DeleteReviewUseCase{
		reviewService: reviewService,
	}
}

// Execute 执行书评删除
// 返回删除后该图书剩余的书评映射
func (uc *DeleteReviewUseCase) Execute(ctx context.Context, req DeleteReviewRequest) (*ReviewsResponse, error) {
	reviews, err := uc.reviewService.DeleteReview(ctx, req.ISBN, req.Username)
	if err != nil {
		metrics.IncCounterVec(metrics.ReviewMutationsFailedTotal, map[string]string{"reason": failureReason(err)})
		return nil, err
	}

	metrics.IncCounter(metrics.ReviewsDeletedTotal)
	return &ReviewsResponse{
		ISBN:    req.ISBN,
		Reviews: reviews,
	}, nil
}

// DeleteReviewRequest 书评删除请求
type DeleteReviewRequest struct {
	ISBN     string
	Username string // 来自认证上下文
}
