package service

import (
	"testing"

	"Agora/models"
)

func TestVoteTransition(t *testing.T) {
	tests := []struct {
		name      string
		prev      int8
		requested int8
		wantDelta int64
		wantFinal int8
	}{
		{"未投过赞一下", models.VoteNone, models.VoteUp, 1, models.VoteUp},
		{"未投过踩一下", models.VoteNone, models.VoteDown, -1, models.VoteDown},
		{"再赞一次等于撤销", models.VoteUp, models.VoteUp, -1, models.VoteNone},
		{"再踩一次等于撤销", models.VoteDown, models.VoteDown, 1, models.VoteNone},
		{"赞改踩", models.VoteUp, models.VoteDown, -2, models.VoteDown},
		{"踩改赞", models.VoteDown, models.VoteUp, 2, models.VoteUp},
		{"显式撤销赞", models.VoteUp, models.VoteNone, -1, models.VoteNone},
		{"显式撤销踩", models.VoteDown, models.VoteNone, 1, models.VoteNone},
		{"未投过就撤销", models.VoteNone, models.VoteNone, 0, models.VoteNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delta, final := voteTransition(tt.prev, tt.requested)
			if delta != tt.wantDelta || final != tt.wantFinal {
				t.Errorf("voteTransition(%d, %d) = (%d, %d), want (%d, %d)",
					tt.prev, tt.requested, delta, final, tt.wantDelta, tt.wantFinal)
			}
		})
	}
}

// 同值双击必须回到原点, 分数净变化为零
func TestVoteTransitionRoundTrip(t *testing.T) {
	for _, v := range []int8{models.VoteUp, models.VoteDown} {
		d1, f1 := voteTransition(models.VoteNone, v)
		d2, f2 := voteTransition(f1, v)
		if f2 != models.VoteNone {
			t.Errorf("双击 %d 后状态 = %d, 应回到未投", v, f2)
		}
		if d1+d2 != 0 {
			t.Errorf("双击 %d 净分变化 = %d, 应为 0", v, d1+d2)
		}
	}
}

// 任意合法操作序列后, delta 累加值必须等于最终状态对应的分值
func TestVoteTransitionLedgerConsistency(t *testing.T) {
	sequences := [][]int8{
		{1, -1, -1, 1, 0},
		{1, 1, 1, -1},
		{-1, 0, 1, 1},
		{0, 0, 1, -1, -1},
	}
	for _, seq := range sequences {
		var state int8 = models.VoteNone
		var sum int64
		for _, req := range seq {
			d, f := voteTransition(state, req)
			sum += d
			state = f
		}
		if sum != int64(state) {
			t.Errorf("序列 %v: 累计变化 %d 与最终状态 %d 不一致", seq, sum, state)
		}
	}
}
