package review

import (
	"context"

	"github.com/xiebiao/bookreview/internal/domain/review"
	apperrors "github.com/xiebiao/bookreview/pkg/errors"
	"github.com/xiebiao/bookreview/pkg/metrics"
)

// UpsertReviewUseCase 书评写入/覆盖用例
// 设计说明：
// 1. 用户名来自认证上下文，绝不来自请求体
// 2. 新增和覆盖走同一条路径（幂等PUT语义），对调用方无区别
// 3. 观测：成功/失败分别计数，失败按原因打标签
type UpsertReviewUseCase struct {
	reviewService review.Service
}

// NewUpsertReviewUseCase 创建书评写入用例
func NewUpsertReviewUseCase(reviewService review.Service) *UpsertReviewUseCase {
	return &UpsertReviewUseCase{
		reviewService: reviewService,
	}
}

// Execute 执行书评写入
// 返回该图书当前完整的书评映射
func (uc *UpsertReviewUseCase) Execute(ctx context.Context, req UpsertReviewRequest) (*ReviewsResponse, error) {
	reviews, err := uc.reviewService.UpsertReview(ctx, req.ISBN, req.Username, req.Review)
	if err != nil {
		metrics.IncCounterVec(metrics.ReviewMutationsFailedTotal, map[string]string{"reason": failureReason(err)})
		return nil, err
	}

	metrics.IncCounter(metrics.ReviewsUpsertedTotal)
	return &ReviewsResponse{
		ISBN:    req.ISBN,
		Reviews: reviews,
	}, nil
}

// failureReason 把业务错误折算成低基数的指标标签
func failureReason(err error) string {
	switch apperrors.GetAppError(err).Code {
	case apperrors.ErrCodeUnauthenticated:
		return "unauthenticated"
	case apperrors.ErrCodeReviewRequired, apperrors.ErrCodeInvalidParams:
		return "invalid_params"
	case apperrors.ErrCodeBookNotFound:
		return "book_not_found"
	case apperrors.ErrCodeReviewNotFound:
		return "review_not_found"
	default:
		return "internal"
	}
}

// =========================================
// 应用层DTO
// =========================================

// UpsertReviewRequest 书评写入请求
type UpsertReviewRequest struct {
	ISBN     string
	Username string // 来自认证上下文
	Review   string
}

// ReviewsResponse 书评映射响应（用户名 → 书评文本）
type ReviewsResponse struct {
	ISBN    string            `json:"isbn"`
	Reviews map[string]string `json:"reviews"`
}
