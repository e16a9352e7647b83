package memory

import (
	"context"
	"sync"

	"github.com/xiebiao/bookreview/internal/domain/book"
)

// CatalogStore 进程内图书目录存储
// 设计说明：
// 1. 整个目录是一张进程级共享可变表，必须显式互斥——
//    单把RWMutex锁整张映射即可（预期负载下不需要按图书细分锁）
// 2. 书评变更的"读-改-写"整体在写锁内完成：失败时不产生部分修改，
//    同一客户端对同一(图书,用户)的两次变更按到达顺序生效，锁下最后写入生效
// 3. 对外只交出副本，内部映射绝不逃逸
// 4. 图书只在启动时由种子数据创建，之后永不删除
type CatalogStore struct {
	mu    sync.RWMutex
	books map[string]*book.Book
	order []string // 稳定枚举顺序（ISBN数字升序）
}

// NewCatalogStore 创建目录存储并载入种子数据
func NewCatalogStore(seed []*book.Book) *CatalogStore {
	s := &CatalogStore{
		books: make(map[string]*book.Book, len(seed)),
		order: make([]string, 0, len(seed)),
	}
	for _, b := range seed {
		if _, ok := s.books[b.ISBN]; ok {
			continue
		}
		s.books[b.ISBN] = b.Clone()
		s.order = append(s.order, b.ISBN)
	}
	book.SortISBNs(s.order)
	return s
}

// FindByISBN 根据ISBN查找图书（返回副本）
func (s *CatalogStore) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.books[isbn]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return b.Clone(), nil
}

// All 返回全部图书（副本），顺序稳定
func (s *CatalogStore) All(ctx context.Context) ([]*book.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	books := make([]*book.Book, 0, len(s.order))
	for _, isbn := range s.order {
		books = append(books, s.books[isbn].Clone())
	}
	return books, nil
}

// UpsertReview 写入或覆盖书评（写锁内原子完成）
func (s *CatalogStore) UpsertReview(ctx context.Context, isbn, username, review string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.books[isbn]
	if !ok {
		return nil, book.ErrBookNotFound
	}

	b.SetReview(username, review)
	return b.CloneReviews(), nil
}

// DeleteReview 删除书评（写锁内原子完成）
// 只移除username一个键；映射保留（可能为空），图书不删除
func (s *CatalogStore) DeleteReview(ctx context.Context, isbn, username string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.books[isbn]
	if !ok {
		return nil, book.ErrBookNotFound
	}

	if !b.RemoveReview(username) {
		return nil, book.ErrReviewNotFound
	}
	return b.CloneReviews(), nil
}
