package types

// 信息流排序
const (
	SortHot = "hot"
	SortNew = "new"
	SortTop = "top"
)

// 聚合信息流范围
const (
	FeedHome    = "home"    // 已加入的社区
	FeedPopular = "popular" // 全站
	FeedAll     = "all"     // 全站, popular 的别名
)

// FeedResponse 游标分页的帖子列表
// next_cursor 为空表示到底了
type FeedResponse struct {
	Posts      []*PostResponse `json:"posts"`
	NextCursor string          `json:"next_cursor,omitempty"`
}
