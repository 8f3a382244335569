package insight

import (
	"sort"
	"time"

	"github.com/afumu/chatwrapped/internal/model"
)

// SegmentConversations 把一个联系人的消息切分为对话线程。
// 先按时间升序排序, 再单次遍历: 与上一条消息的间隔超过
// ConversationGap 时开启新线程。空输入返回空列表。
func SegmentConversations(contactID string, messages []model.MessageRecord) []model.ConversationThread {
	if len(messages) == 0 {
		return nil
	}

	sorted := sortByTime(messages)

	var threads []model.ConversationThread
	current := model.ConversationThread{
		ContactID: contactID,
		Messages:  []model.MessageRecord{sorted[0]},
		StartTime: sorted[0].Timestamp,
		EndTime:   sorted[0].Timestamp,
	}

	for i := 1; i < len(sorted); i++ {
		msg := sorted[i]
		if msg.Timestamp.Sub(current.EndTime) > ConversationGap {
			threads = append(threads, current)
			current = model.ConversationThread{
				ContactID: contactID,
				Messages:  nil,
				StartTime: msg.Timestamp,
			}
		}
		current.Messages = append(current.Messages, msg)
		current.EndTime = msg.Timestamp
	}
	threads = append(threads, current)
	return threads
}

// sortByTime 返回按时间升序的副本, 不修改调用方的切片。
// 时间相同时按原顺序保持稳定, 保证结果确定。
func sortByTime(messages []model.MessageRecord) []model.MessageRecord {
	sorted := make([]model.MessageRecord, len(messages))
	copy(sorted, messages)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	return sorted
}

// groupByContact 按联系人分组, 返回确定顺序的联系人ID列表和分组映射。
// 标识符为空或为 Unknown 的消息不参与分组。
func groupByContact(messages []model.MessageRecord) ([]string, map[string][]model.MessageRecord) {
	groups := make(map[string][]model.MessageRecord)
	var order []string
	for _, msg := range messages {
		if msg.ContactID == "" || msg.ContactID == UnknownContactID {
			continue
		}
		if _, ok := groups[msg.ContactID]; !ok {
			order = append(order, msg.ContactID)
		}
		groups[msg.ContactID] = append(groups[msg.ContactID], msg)
	}
	sort.Strings(order)
	return order, groups
}

// durationMinutes 时间差换算为分钟。
func durationMinutes(from, to time.Time) float64 {
	return to.Sub(from).Minutes()
}
