package cursor

import (
	"encoding/base64"
	"encoding/json"
	"errors"
)

// Cursor 游标: 记录最后一条的排序键和ID, 排序键相同时按ID去重分页
// 不同排序使用不同的键字段: hot 用 Rank, new 用 Time, top 用 Score
type Cursor struct {
	Rank  float64 `json:"r,omitempty"`
	Time  int64   `json:"t,omitempty"`
	Score int64   `json:"s,omitempty"`
	ID    uint64  `json:"id"`
}

var ErrInvalid = errors.New("无效的分页游标")

// Encode 序列化为不透明字符串
func (c *Cursor) Encode() string {
	raw, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(raw)
}

// Decode 解析游标, 空字符串表示第一页, 返回 nil
func Decode(s string) (*Cursor, error) {
	if s == "" {
		return nil, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, ErrInvalid
	}
	var c Cursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, ErrInvalid
	}
	if c.ID == 0 {
		return nil, ErrInvalid
	}
	return &c, nil
}
