package handler

import (
	"github.com/gin-gonic/gin"

	appreview "github.com/xiebiao/bookreview/internal/application/review"
	"github.com/xiebiao/bookreview/internal/interface/http/dto"
	"github.com/xiebiao/bookreview/internal/interface/http/middleware"
	"github.com/xiebiao/bookreview/pkg/response"
)

// ReviewHandler 书评HTTP处理器
// 变更类接口的用户名一律取自认证上下文，请求里出现的任何用户名字段都被忽略
type ReviewHandler struct {
	upsertReviewUseCase *appreview.UpsertReviewUseCase
	deleteReviewUseCase *appreview.DeleteReviewUseCase
	getReviewsUseCase   *appreview.GetReviewsUseCase
}

// NewReviewHandler 创建书评处理器
func NewReviewHandler(
	upsertReviewUseCase *appreview.UpsertReviewUseCase,
	deleteReviewUseCase *appreview.DeleteReviewUseCase,
	getReviewsUseCase *appreview.GetReviewsUseCase,
) *ReviewHandler {
	return &ReviewHandler{
		upsertReviewUseCase: upsertReviewUseCase,
		deleteReviewUseCase: deleteReviewUseCase,
		getReviewsUseCase:   getReviewsUseCase,
	}
}

// GetReviews 查询图书书评（无需登录）
// @Summary      查询书评
// @Tags         书评
// @Produce      json
// @Param        isbn path string true "ISBN"
// @Success      200 {object} response.Response{data=dto.ReviewsResponse} "查询成功"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /review/{isbn} [get]
func (h *ReviewHandler) GetReviews(c *gin.Context) {
	isbn := c.Param("isbn")

	result, err := h.getReviewsUseCase.Execute(c.Request.Context(), isbn)
	if err != nil {
		response.Error(c, err)
		return
	}

	// 无书评是成功态，不是错误
	if len(result.Reviews) == 0 {
		response.SuccessWithMessage(c, "该图书暂无书评", &dto.ReviewsResponse{
			ISBN:    result.ISBN,
			Reviews: map[string]string{},
		})
		return
	}

	response.Success(c, &dto.ReviewsResponse{
		ISBN:    result.ISBN,
		Reviews: result.Reviews,
	})
}

// UpsertReview 写入/覆盖书评（需登录）
// @Summary      写入书评
// @Description  新增或原地覆盖当前用户在该图书下的书评
// @Tags         书评
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        isbn path string true "ISBN"
// @Param        review query string false "书评文本（缺省时取JSON请求体review字段）"
// @Success      200 {object} response.Response{data=dto.ReviewsResponse} "写入成功"
// @Failure      400 {object} response.Response "书评文本为空"
// @Failure      403 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /review/{isbn} [put]
func (h *ReviewHandler) UpsertReview(c *gin.Context) {
	isbn := c.Param("isbn")
	username := middleware.MustGetUsername(c)

	// 书评文本优先取查询参数，缺省时回落到JSON请求体
	review := c.Query("review")
	if review == "" {
		var body dto.UpsertReviewBody
		if err := c.ShouldBindJSON(&body); err == nil {
			review = body.Review
		}
	}

	result, err := h.upsertReviewUseCase.Execute(c.Request.Context(), appreview.UpsertReviewRequest{
		ISBN:     isbn,
		Username: username,
		Review:   review,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, "书评已保存", &dto.ReviewsResponse{
		ISBN:    result.ISBN,
		Reviews: result.Reviews,
	})
}

// DeleteReview 删除书评（需登录）
// @Summary      删除书评
// @Description  只删除当前用户名下的那一条书评
// @Tags         书评
// @Produce      json
// @Security     BearerAuth
// @Param        isbn path string true "ISBN"
// @Success      200 {object} response.Response{data=dto.ReviewsResponse} "删除成功"
// @Failure      403 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "图书或书评不存在"
// @Router       /review/{isbn} [delete]
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	isbn := c.Param("isbn")
	username := middleware.MustGetUsername(c)

	result, err := h.deleteReviewUseCase.Execute(c.Request.Context(), appreview.DeleteReviewRequest{
		ISBN:     isbn,
		Username: username,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, "书评已删除", &dto.ReviewsResponse{
		ISBN:    result.ISBN,
		Reviews: result.Reviews,
	})
}
