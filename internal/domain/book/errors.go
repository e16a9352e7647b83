package book

import (
	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrReviewNotFound 书评不存在
	// 说明："图书没有任何书评"和"该用户没评论过"对外是同一种错误
	ErrReviewNotFound = apperrors.New(apperrors.ErrCodeReviewNotFound, "该用户的书评不存在")

	// ErrNoAuthorMatch 按作者检索无结果（零匹配按不存在处理）
	ErrNoAuthorMatch = apperrors.New(apperrors.ErrCodeNoMatch, "未找到该作者的图书")

	// ErrNoTitleMatch 按书名检索无结果
	ErrNoTitleMatch = apperrors.New(apperrors.ErrCodeNoMatch, "未找到该书名的图书")
)
