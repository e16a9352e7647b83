package catalog

import (
	"context"

	"github.com/xiebiao/bookreview/internal/domain/book"
)

// FindBookUseCase 按ISBN查询图书用例
// 先整表拉取再查找：保持拉取层的错误语义不被短路——
// 传输失败报500，拉取成功但ISBN不在表里才是业务404
type FindBookUseCase struct {
	fetcher book.Fetcher
}

// NewFindBookUseCase 创建ISBN查询用例
func NewFindBookUseCase(fetcher book.Fetcher) *FindBookUseCase {
	return &FindBookUseCase{
		fetcher: fetcher,
	}
}

// Execute 执行ISBN查询
func (uc *FindBookUseCase) Execute(ctx context.Context, isbn string) (*BookItem, error) {
	books, err := uc.fetcher.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	for _, b := range books {
		if b.ISBN == isbn {
			item := toBookItem(b)
			return &item, nil
		}
	}
	return nil, book.ErrBookNotFound
}
