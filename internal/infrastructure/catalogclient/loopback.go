package catalogclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/xiebiao/bookreview/internal/domain/book"
	"github.com/xiebiao/bookreview/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/bookreview/pkg/errors"
	"github.com/xiebiao/bookreview/pkg/metrics"
)

// breakerName 回环拉取熔断器的指标标签
const breakerName = "catalog-loopback"

// httpClient HTTP客户端接口（便于Mock测试）
type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// LoopbackFetcher HTTP回环拉取器
// 设计说明：
// 1. 真实地向自身的 /internal/books 端点发一次GET，还原原始拓扑
// 2. 熔断器保护拉取步骤：连续失败快速失败，不重试、不等待超时
// 3. 任何传输层失败（连接、状态码、解码）都归为ErrCodeFetchFailed，
//    日志里保留根因，观测上与业务404分开计数
type LoopbackFetcher struct {
	client  httpClient
	baseURL url.URL
	breaker *circuitbreaker.CircuitBreaker
}

// NewLoopbackFetcher 创建回环拉取器
func NewLoopbackFetcher(client httpClient, baseURL url.URL, breaker *circuitbreaker.CircuitBreaker) *LoopbackFetcher {
	return &LoopbackFetcher{
		client:  client,
		baseURL: baseURL,
		breaker: breaker,
	}
}

// FetchAll 拉取全部图书
// 顺序与目录存储的枚举顺序一致（JSON对象不保序，拉取后重排）
func (f *LoopbackFetcher) FetchAll(ctx context.Context) ([]*book.Book, error) {
	start := time.Now()

	var books []*book.Book
	err := f.breaker.Execute(func() error {
		var fetchErr error
		books, fetchErr = f.fetch(ctx)
		return fetchErr
	})

	metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": breakerName}, float64(f.breaker.State()))
	if err != nil {
		result := "failure"
		if errors.Is(err, circuitbreaker.ErrOpenState) {
			result = "rejected" // 熔断拒绝，没有真正发出请求
		}
		metrics.IncCounterVec(metrics.CircuitBreakerRequests, map[string]string{"name": breakerName, "result": result})
		metrics.IncCounterVec(metrics.CatalogFetchesTotal, map[string]string{"result": "failure"})
		slog.Warn("catalog fetch failed", "url", f.baseURL.String(), "error", err)
		return nil, apperrors.WrapWithCode(err, apperrors.ErrCodeFetchFailed, "获取图书目录失败")
	}

	metrics.IncCounterVec(metrics.CircuitBreakerRequests, map[string]string{"name": breakerName, "result": "success"})
	metrics.IncCounterVec(metrics.CatalogFetchesTotal, map[string]string{"result": "success"})
	metrics.ObserveHistogram(metrics.CatalogFetchDuration, time.Since(start).Seconds())
	return books, nil
}

// fetch 执行一次回环HTTP请求
func (f *LoopbackFetcher) fetch(ctx context.Context) ([]*book.Book, error) {
	fetchURL := f.baseURL.JoinPath("internal", "books")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("内部列表端点返回异常状态: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	// 原始列表端点返回 ISBN → 图书 的裸映射
	byISBN := make(map[string]*book.Book)
	if err := json.Unmarshal(body, &byISBN); err != nil {
		return nil, err
	}

	isbns := make([]string, 0, len(byISBN))
	for isbn, b := range byISBN {
		// JSON里的null值会解码成nil指针，跳过
		if b == nil {
			continue
		}
		isbns = append(isbns, isbn)
	}
	book.SortISBNs(isbns)

	books := make([]*book.Book, 0, len(byISBN))
	for _, isbn := range isbns {
		b := byISBN[isbn]
		b.ISBN = isbn
		books = append(books, b)
	}
	return books, nil
}
