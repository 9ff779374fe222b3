package service

import (
	"sort"
	"testing"
	"time"

	"Agora/models"
	"Agora/pkg/cursor"
	"Agora/pkg/rank"
	"Agora/types"
)

func mkPost(id uint64, score int64, hot float64, age time.Duration) *models.Post {
	return &models.Post{
		ID:        id,
		Score:     score,
		HotRank:   hot,
		CreatedAt: time.Unix(1700000000, 0).Add(-age),
	}
}

func TestMakeCursorPerSort(t *testing.T) {
	p := mkPost(42, 17, 0.699, 2*time.Hour)

	tests := []struct {
		name string
		sort string
		want func(c *cursor.Cursor) bool
	}{
		{"hot 用热度键", types.SortHot, func(c *cursor.Cursor) bool { return c.Rank == p.HotRank && c.Time == 0 && c.Score == 0 }},
		{"new 用时间键", types.SortNew, func(c *cursor.Cursor) bool { return c.Time == p.CreatedAt.UnixNano() && c.Rank == 0 && c.Score == 0 }},
		{"top 用分数键", types.SortTop, func(c *cursor.Cursor) bool { return c.Score == p.Score && c.Rank == 0 && c.Time == 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := makeCursor(tt.sort, p)
			c, err := cursor.Decode(encoded)
			if err != nil {
				t.Fatalf("Decode(%q) 失败: %v", encoded, err)
			}
			if c.ID != p.ID {
				t.Errorf("游标 ID = %d, want %d", c.ID, p.ID)
			}
			if !tt.want(c) {
				t.Errorf("游标键不匹配: %+v", c)
			}
		})
	}
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, DefaultPageSize},
		{-5, DefaultPageSize},
		{1, 1},
		{MaxPageSize, MaxPageSize},
		{MaxPageSize + 1, MaxPageSize},
	}
	for _, tt := range tests {
		if got := clampLimit(tt.in); got != tt.want {
			t.Errorf("clampLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

// 置顶块整体在前, 块内保持 DAO 给出的顺序(创建时间倒序)
func TestStitchPinned(t *testing.T) {
	// A: 2小时前, 5分; B: 1小时前, 1分; P: 置顶, 10小时前, 0分
	a := mkPost(1, 5, hotRank(5, 2*time.Hour), 2*time.Hour)
	b := mkPost(2, 1, hotRank(1, time.Hour), time.Hour)
	p := mkPost(3, 0, hotRank(0, 10*time.Hour), 10*time.Hour)
	p.IsPinned = true

	got := stitchPinned([]*models.Post{p}, []*models.Post{a, b})
	wantIDs := []uint64{3, 1, 2}
	if len(got) != len(wantIDs) {
		t.Fatalf("长度 = %d, want %d", len(got), len(wantIDs))
	}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Errorf("第 %d 条 ID = %d, want %d", i, got[i].ID, id)
		}
	}

	// 翻页时没有置顶块
	page2 := stitchPinned(nil, []*models.Post{b})
	if len(page2) != 1 || page2[0].ID != b.ID {
		t.Errorf("翻页结果 = %v, want 仅 %d", page2, b.ID)
	}
}

func hotRank(score int64, age time.Duration) float64 {
	return rank.Hot(score, time.Unix(1700000000, 0).Add(-age), 45000)
}

// 游标翻页: 每条恰好出现一次, 键相同时按 ID 去重
func TestFeedCursorPaginationExactlyOnce(t *testing.T) {
	posts := []*models.Post{
		mkPost(1, 50, 1.70, 1*time.Hour),
		mkPost(2, 50, 1.70, 2*time.Hour), // score 和 rank 都与 1 并列
		mkPost(3, 10, 1.00, 3*time.Hour),
		mkPost(4, 10, 0.90, 3*time.Hour), // created_at 与 3 并列
		mkPost(5, -2, -0.30, 30*time.Minute),
		mkPost(6, 0, 0.0, 5*time.Hour),
		mkPost(7, 0, 0.0, 5*time.Hour), // 三键全与 6 并列
	}

	for _, sortKey := range []string{types.SortHot, types.SortNew, types.SortTop} {
		t.Run(sortKey, func(t *testing.T) {
			full := sortedByKey(sortKey, posts)

			var got []uint64
			var cur *cursor.Cursor
			for page := 0; ; page++ {
				if page > len(posts) {
					t.Fatal("翻页未终止")
				}
				batch := pageAfter(sortKey, full, cur, 2)
				for _, p := range batch {
					got = append(got, p.ID)
				}
				if len(batch) < 2 {
					break
				}
				encoded := makeCursor(sortKey, batch[len(batch)-1])
				next, err := cursor.Decode(encoded)
				if err != nil {
					t.Fatalf("Decode 失败: %v", err)
				}
				cur = next
			}

			if len(got) != len(posts) {
				t.Fatalf("共取到 %d 条, want %d: %v", len(got), len(posts), got)
			}
			seen := make(map[uint64]bool, len(got))
			for i, id := range got {
				if seen[id] {
					t.Errorf("ID %d 重复出现", id)
				}
				seen[id] = true
				if full[i].ID != id {
					t.Errorf("第 %d 条 ID = %d, want %d", i, id, full[i].ID)
				}
			}
		})
	}
}

// sortedByKey 按排序键全量排序, 与 DAO 的 ORDER BY 一致
func sortedByKey(sortKey string, posts []*models.Post) []*models.Post {
	out := append([]*models.Post(nil), posts...)
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch sortKey {
		case types.SortNew:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
		case types.SortTop:
			if a.Score != b.Score {
				return a.Score > b.Score
			}
		default:
			if a.HotRank != b.HotRank {
				return a.HotRank > b.HotRank
			}
		}
		return a.ID > b.ID
	})
	return out
}

// pageAfter 按 DAO 的游标谓词取一页: key < ? OR (key = ? AND id < ?)
func pageAfter(sortKey string, sorted []*models.Post, cur *cursor.Cursor, limit int) []*models.Post {
	out := make([]*models.Post, 0, limit)
	for _, p := range sorted {
		if cur != nil && !afterCursor(sortKey, p, cur) {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out
}

func afterCursor(sortKey string, p *models.Post, cur *cursor.Cursor) bool {
	switch sortKey {
	case types.SortNew:
		t := p.CreatedAt.UnixNano()
		return t < cur.Time || (t == cur.Time && p.ID < cur.ID)
	case types.SortTop:
		return p.Score < cur.Score || (p.Score == cur.Score && p.ID < cur.ID)
	default:
		return p.HotRank < cur.Rank || (p.HotRank == cur.Rank && p.ID < cur.ID)
	}
}
