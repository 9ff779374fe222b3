package config

// DefaultDecayHours 热度衰减常数(小时), 经典对数衰减
const DefaultDecayHours = 45000.0

// Rank 热度排序配置
type Rank struct {
	DecayHours float64 `json:"decay_hours" yaml:"decay_hours"`
}
