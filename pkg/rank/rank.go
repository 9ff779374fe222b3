package rank

import (
	"math"
	"time"
)

// Hot 计算帖子的热度排序键
//
// 排序语义: log10(max(|score|,1)) * sign(score) - 帖龄(小时)/decayHours
// 实际存储的是等价形式: 对数项 + 发布时间(小时)/decayHours
// 两种形式对任意固定的"当前时间"排序一致, 但后者只依赖 (score, createdAt),
// 可以落库成列, 投票时在同一事务里重算, 游标翻页期间排序稳定
func Hot(score int64, createdAt time.Time, decayHours float64) float64 {
	order := math.Log10(math.Max(math.Abs(float64(score)), 1))

	var sign float64
	switch {
	case score > 0:
		sign = 1
	case score < 0:
		sign = -1
	}

	ageBase := float64(createdAt.Unix()) / 3600.0
	return sign*order + ageBase/decayHours
}
