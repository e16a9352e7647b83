package book

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. ISBN作为业务唯一标识，目录以它为键
// 2. Reviews是 用户名 → 书评内容 的映射，键唯一
//    书评在逻辑上归属(图书,用户)二元组，每人每书最多一条
// 3. Reviews延迟创建：首条书评写入时才分配映射
type Book struct {
	ISBN    string            `json:"isbn"`
	Author  string            `json:"author"`
	Title   string            `json:"title"`
	Reviews map[string]string `json:"reviews,omitempty"`
}

// NewBook 创建新图书(工厂方法)
// 目录在进程启动时由种子数据构建，图书创建后不会被删除
func NewBook(isbn, author, title string) *Book {
	return &Book{
		ISBN:   isbn,
		Author: author,
		Title:  title,
	}
}

// SetReview 写入或覆盖指定用户的书评(领域行为)
// 业务规则：映射键即用户名，同一用户重复写入是原地覆盖，不会产生重复条目
func (b *Book) SetReview(username, review string) {
	if b.Reviews == nil {
		b.Reviews = make(map[string]string)
	}
	b.Reviews[username] = review
}

// RemoveReview 删除指定用户的书评(领域行为)
// 只移除该用户名对应的一个键，其他用户的书评不受影响；
// 删除后映射保留(可能为空)，图书本身不会被删除
// 返回false表示该用户从未评论过这本书(或图书还没有任何书评)
func (b *Book) RemoveReview(username string) bool {
	if b.Reviews == nil {
		return false
	}
	if _, ok := b.Reviews[username]; !ok {
		return false
	}
	delete(b.Reviews, username)
	return true
}

// ReviewBy 查询指定用户的书评
func (b *Book) ReviewBy(username string) (string, bool) {
	if b.Reviews == nil {
		return "", false
	}
	review, ok := b.Reviews[username]
	return review, ok
}

// CloneReviews 返回书评映射的副本
// 说明：实体内部的映射不能逃逸到调用方，否则共享锁形同虚设
func (b *Book) CloneReviews() map[string]string {
	reviews := make(map[string]string, len(b.Reviews))
	for username, review := range b.Reviews {
		reviews[username] = review
	}
	return reviews
}

// Clone 返回图书的深拷贝（含书评映射）
func (b *Book) Clone() *Book {
	clone := &Book{
		ISBN:   b.ISBN,
		Author: b.Author,
		Title:  b.Title,
	}
	if b.Reviews != nil {
		clone.Reviews = b.CloneReviews()
	}
	return clone
}
