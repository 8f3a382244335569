package types

import "time"

// MessageQuery 消息查询条件。零值字段表示不过滤。
type MessageQuery struct {
	StartTime time.Time // 起始时间 (含)
	EndTime   time.Time // 结束时间 (含)
	ContactID string    // 只取指定联系人
	Limit     int       // 0 表示不限制
}
