package catalog

import (
	"context"

	"github.com/xiebiao/bookreview/internal/domain/book"
)

// ListBooksUseCase 图书列表查询用例
// 设计说明：
// 1. 所有公开目录读取都经过Fetcher，拉取方式（直取/回环）由装配时决定
// 2. 拉取失败是传输层错误（500），与"图书不存在"的业务404严格分开
// 3. 列表顺序稳定：ISBN数字升序
type ListBooksUseCase struct {
	fetcher book.Fetcher
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(fetcher book.Fetcher) *ListBooksUseCase {
	return &ListBooksUseCase{
		fetcher: fetcher,
	}
}

// Execute 执行列表查询
func (uc *ListBooksUseCase) Execute(ctx context.Context) (*ListBooksResponse, error) {
	books, err := uc.fetcher.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]BookItem, len(books))
	for i, b := range books {
		list[i] = toBookItem(b)
	}

	return &ListBooksResponse{
		Books: list,
		Total: len(list),
	}, nil
}

// =========================================
// 应用层DTO
// =========================================

// BookItem 图书DTO
type BookItem struct {
	ISBN    string            `json:"isbn"`
	Author  string            `json:"author"`
	Title   string            `json:"title"`
	Reviews map[string]string `json:"reviews"`
}

// ListBooksResponse 列表查询响应DTO
type ListBooksResponse struct {
	Books []BookItem `json:"books"`
	Total int        `json:"total"`
}

// toBookItem 领域实体 → 应用层DTO
func toBookItem(b *book.Book) BookItem {
	return BookItem{
		ISBN:    b.ISBN,
		Author:  b.Author,
		Title:   b.Title,
		Reviews: b.CloneReviews(),
	}
}
