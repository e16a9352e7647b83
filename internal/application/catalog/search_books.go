package catalog

import (
	"context"

	"github.com/xiebiao/bookreview/internal/domain/book"
)

// SearchBooksUseCase 按作者/书名检索用例
// 匹配是精确、区分大小写的整串相等（不是子串、不是模糊匹配）
// 零命中是业务404，与拉取失败的500分开
type SearchBooksUseCase struct {
	fetcher book.Fetcher
}

// NewSearchBooksUseCase 创建检索用例
func NewSearchBooksUseCase(fetcher book.Fetcher) *SearchBooksUseCase {
	return &SearchBooksUseCase{
		fetcher: fetcher,
	}
}

// ByAuthor 按作者精确检索
func (uc *SearchBooksUseCase) ByAuthor(ctx context.Context, author string) (*ListBooksResponse, error) {
	return uc.search(ctx, func(b *book.Book) bool {
		return b.Author == author
	}, book.ErrNoAuthorMatch)
}

// ByTitle 按书名精确检索
func (uc *SearchBooksUseCase) ByTitle(ctx context.Context, title string) (*ListBooksResponse, error) {
	return uc.search(ctx, func(b *book.Book) bool {
		return b.Title == title
	}, book.ErrNoTitleMatch)
}

// search 拉取整表后按谓词过滤，零命中返回noMatch
func (uc *SearchBooksUseCase) search(ctx context.Context, match func(*book.Book) bool, noMatch error) (*ListBooksResponse, error) {
	books, err := uc.fetcher.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]BookItem, 0)
	for _, b := range books {
		if match(b) {
			list = append(list, toBookItem(b))
		}
	}
	if len(list) == 0 {
		return nil, noMatch
	}

	return &ListBooksResponse{
		Books: list,
		Total: len(list),
	}, nil
}
