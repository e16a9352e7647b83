package dto

// UpsertReviewBody 书评写入请求体
// 说明：书评文本优先取查询参数review，查询参数缺失时回落到JSON请求体。
// 用户名永远不出现在请求里——映射键来自认证上下文
type UpsertReviewBody struct {
	Review string `json:"review"`
}

// ReviewsResponse 书评映射响应（用户名 → 书评文本）
type ReviewsResponse struct {
	ISBN    string            `json:"isbn"`
	Reviews map[string]string `json:"reviews"`
}
