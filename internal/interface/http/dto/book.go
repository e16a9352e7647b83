package dto

// BookResponse 图书响应
type BookResponse struct {
	ISBN    string            `json:"isbn"`
	Author  string            `json:"author"`
	Title   string            `json:"title"`
	Reviews map[string]string `json:"reviews"`
}

// BookListResponse 图书列表响应
type BookListResponse struct {
	Books []BookResponse `json:"books"`
	Total int            `json:"total"`
}
