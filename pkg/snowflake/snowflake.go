package snowflake

import "github.com/bwmarrin/snowflake"

var node *snowflake.Node

func init() {
	node, _ = snowflake.NewNode(1)
}

// GenID 生成全局唯一ID, 整体递增, 可用作游标分页的兜底排序键
func GenID() int64 {
	return node.Generate().Int64()
}
