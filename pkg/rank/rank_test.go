package rank

import (
	"testing"
	"time"
)

const decay = 45000.0

// 分数单调: 同龄帖子, 分数越高热度越高
func TestHot_MonotonicInScore(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	prev := Hot(-100, created, decay)
	for _, s := range []int64{-10, -1, 0, 1, 5, 10, 100, 10000} {
		curr := Hot(s, created, decay)
		if curr < prev {
			t.Fatalf("hot not monotonic in score: score=%d hot=%f prev=%f", s, curr, prev)
		}
		prev = curr
	}
}

// 时间单调: 同分帖子, 越新热度越高
func TestHot_MonotonicInAge(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	prev := Hot(10, base, decay)
	for h := 1; h <= 240; h++ {
		curr := Hot(10, base.Add(time.Duration(h)*time.Hour), decay)
		if curr <= prev {
			t.Fatalf("hot not increasing with recency: +%dh hot=%f prev=%f", h, curr, prev)
		}
		prev = curr
	}
}

// 高分旧帖最终被新帖超过(对数增长 vs 线性衰减)
func TestHot_DecayOvertakes(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	old := Hot(100000, now.Add(-300000*time.Hour), decay)
	fresh := Hot(1, now, decay)
	if fresh <= old {
		t.Fatalf("expected fresh post to outrank ancient high-score post: fresh=%f old=%f", fresh, old)
	}
}

// 场景: A(5分,2小时前) B(1分,1小时前) P(0分,10小时前,置顶)
// hot 排序下非置顶部分应为 A > B, P 以置顶身份另行排在最前
func TestHot_Scenario(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	hotA := Hot(5, now.Add(-2*time.Hour), decay)
	hotB := Hot(1, now.Add(-1*time.Hour), decay)
	hotP := Hot(0, now.Add(-10*time.Hour), decay)

	if !(hotA > hotB) {
		t.Fatalf("expected A > B: A=%f B=%f", hotA, hotB)
	}
	if !(hotB > hotP) {
		t.Fatalf("expected B > P: B=%f P=%f", hotB, hotP)
	}
}

// 负分帖子排在零分帖子之后
func TestHot_NegativeScore(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if Hot(-5, created, decay) >= Hot(0, created, decay) {
		t.Fatal("expected negative score to rank below zero score")
	}
}
