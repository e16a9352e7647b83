// Package catalogclient 实现目录拉取（book.Fetcher）
//
// 原始设计把本地目录读取包装成一次对自身列表端点的网络调用，
// 让读查询带上一个独立的失败域。这里保留该错误分层：
// 拉取失败统一以ErrCodeFetchFailed（传输层，对外500）上抛，
// 与"没有匹配记录"（业务层，对外404）永不合并。
package catalogclient

import (
	"context"
	"time"

	"github.com/xiebiao/bookreview/internal/domain/book"
	apperrors "github.com/xiebiao/bookreview/pkg/errors"
	"github.com/xiebiao/bookreview/pkg/metrics"
)

// DirectFetcher 进程内直连拉取器（默认实现）
// 回环网络跳转是原始设计的产物而非真实的分布式边界，
// 单进程重写里折叠成同步函数调用；错误分层行为保持不变
type DirectFetcher struct {
	catalog book.Repository
}

// NewDirectFetcher 创建进程内拉取器
func NewDirectFetcher(catalog book.Repository) *DirectFetcher {
	return &DirectFetcher{catalog: catalog}
}

// FetchAll 拉取全部图书
func (f *DirectFetcher) FetchAll(ctx context.Context) ([]*book.Book, error) {
	start := time.Now()

	books, err := f.catalog.All(ctx)
	if err != nil {
		metrics.IncCounterVec(metrics.CatalogFetchesTotal, map[string]string{"result": "failure"})
		return nil, apperrors.WrapWithCode(err, apperrors.ErrCodeFetchFailed, "获取图书目录失败")
	}

	metrics.IncCounterVec(metrics.CatalogFetchesTotal, map[string]string{"result": "success"})
	metrics.ObserveHistogram(metrics.CatalogFetchDuration, time.Since(start).Seconds())
	return books, nil
}
