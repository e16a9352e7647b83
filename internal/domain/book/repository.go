package book

import (
	"context"
)

// Repository 图书目录仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口，infrastructure层实现（当前为带锁的进程内存储）
// 2. 书评变更方法把"读-改-写"整体交给实现，在存储的写锁内原子完成，
//    失败时不产生部分修改
// 3. 便于Mock测试，不依赖具体存储实现
type Repository interface {
	// FindByISBN 根据ISBN查找图书（返回副本）
	// 如果不存在，返回ErrBookNotFound
	FindByISBN(ctx context.Context, isbn string) (*Book, error)

	// All 返回全部图书（副本），枚举顺序稳定（与种子顺序一致）
	All(ctx context.Context) ([]*Book, error)

	// UpsertReview 写入或覆盖指定用户在指定图书下的书评
	// 同一用户重复写入为原地覆盖（幂等，最后写入生效）
	// 图书不存在时返回ErrBookNotFound，目录不变
	// 返回该图书当前完整的书评映射
	UpsertReview(ctx context.Context, isbn, username, review string) (map[string]string, error)

	// DeleteReview 删除指定用户在指定图书下的书评
	// 图书不存在返回ErrBookNotFound；该用户没有书评返回ErrReviewNotFound
	// 只移除一个键，返回删除后的书评映射（可能为空映射，但不为nil）
	DeleteReview(ctx context.Context, isbn, username string) (map[string]string, error)
}

// Fetcher 目录拉取接口
// 设计说明:
// 原始设计把目录读取建模成一次对自身原始列表端点的网络调用，
// 这让读查询多出一个独立的失败域：拉取本身可能失败（传输层错误），
// 与"没有匹配记录"（业务层404）是两类错误，不能合并。
// 实现有两种：
// - 进程内直连（默认）：同步函数调用，失败同样包装为ErrCatalogFetch
// - HTTP回环：真实地请求自身的 /internal/books 端点
// 拉取失败立即返回错误，任何实现都不做重试。
type Fetcher interface {
	// FetchAll 拉取全部图书，顺序与Repository.All一致
	// 拉取失败时返回以ErrCodeFetchFailed包装的错误
	FetchAll(ctx context.Context) ([]*Book, error)
}
