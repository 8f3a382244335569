package insight

import (
	"context"
	"sort"

	"github.com/afumu/chatwrapped/internal/model"
)

// 事件方向标签。
const (
	sideYou  = "you"
	sideThem = "them"
)

// DetectConnectionPatterns 按联系人检测 ghosting/重联/密集对话。
// ghosting 与重联一一对应: 间隔前最后一条消息的发送方是
// "谁 ghost 了", 间隔后第一条消息的发送方是"谁重联了"。
func DetectConnectionPatterns(ctx context.Context, messages []model.MessageRecord) model.ConnectionPatterns {
	order, groups := groupByContact(messages)

	var patterns model.ConnectionPatterns
	for _, contactID := range order {
		if ctx.Err() != nil {
			break
		}
		sorted := sortByTime(groups[contactID])

		// 间隔扫描: 相邻两条消息相差 >= GhostingGapDays 天。
		for i := 1; i < len(sorted); i++ {
			prev, cur := sorted[i-1], sorted[i]
			gapDays := int(cur.Timestamp.Sub(prev.Timestamp).Hours() / 24)
			if gapDays < GhostingGapDays {
				continue
			}
			patterns.GhostingEvents = append(patterns.GhostingEvents, model.GhostingEvent{
				ContactID:       contactID,
				GapDays:         gapDays,
				LastMessageDate: prev.Timestamp,
				WhoGhosted:      senderSide(prev),
			})
			patterns.ReconnectionEvents = append(patterns.ReconnectionEvents, model.ReconnectionEvent{
				ContactID:      contactID,
				GapDays:        gapDays,
				ReconnectDate:  cur.Timestamp,
				WhoReconnected: senderSide(cur),
			})
		}

		// 密集对话: 消息数超过阈值且速率超过阈值的线程。
		for _, thread := range SegmentConversations(contactID, sorted) {
			n := len(thread.Messages)
			if n <= IntenseThreadMinMessages {
				continue
			}
			duration := durationMinutes(thread.StartTime, thread.EndTime)
			streak := model.ConversationStreak{
				ContactID:       contactID,
				MessageCount:    n,
				StartTime:       thread.StartTime,
				EndTime:         thread.EndTime,
				DurationMinutes: duration,
			}

			if patterns.LongestStreak == nil || n > patterns.LongestStreak.MessageCount {
				s := streak
				patterns.LongestStreak = &s
			}

			if duration > 0 && float64(n)/duration > IntenseRatePerMinute {
				patterns.IntenseConversations = append(patterns.IntenseConversations, streak)
			}
		}
	}

	sortAndCapEvents(&patterns)
	return patterns
}

func senderSide(msg model.MessageRecord) string {
	if msg.IsFromMe {
		return sideYou
	}
	return sideThem
}

// sortAndCapEvents 排序并截断输出。间隔按天数降序, 密集对话按消息数降序,
// 平局按联系人ID, 保证结果确定。ghosting 与重联成对截断, 保持对称。
func sortAndCapEvents(p *model.ConnectionPatterns) {
	idx := make([]int, len(p.GhostingEvents))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ga, gb := p.GhostingEvents[idx[a]], p.GhostingEvents[idx[b]]
		if ga.GapDays != gb.GapDays {
			return ga.GapDays > gb.GapDays
		}
		return ga.ContactID < gb.ContactID
	})
	if len(idx) > GhostingTopN {
		idx = idx[:GhostingTopN]
	}
	ghosts := make([]model.GhostingEvent, 0, len(idx))
	recons := make([]model.ReconnectionEvent, 0, len(idx))
	for _, i := range idx {
		ghosts = append(ghosts, p.GhostingEvents[i])
		recons = append(recons, p.ReconnectionEvents[i])
	}
	p.GhostingEvents = ghosts
	p.ReconnectionEvents = recons

	sort.SliceStable(p.IntenseConversations, func(a, b int) bool {
		ia, ib := p.IntenseConversations[a], p.IntenseConversations[b]
		if ia.MessageCount != ib.MessageCount {
			return ia.MessageCount > ib.MessageCount
		}
		return ia.ContactID < ib.ContactID
	})
	if len(p.IntenseConversations) > IntenseTopN {
		p.IntenseConversations = p.IntenseConversations[:IntenseTopN]
	}
}
