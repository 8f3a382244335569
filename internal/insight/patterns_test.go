package insight

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/afumu/chatwrapped/internal/model"
)

func TestDetectConnectionPatterns_Ghosting(t *testing.T) {
	// 第 0 天对方发消息, 第 10 天我回复: 一对 ghosting/重联事件
	msgs := []model.MessageRecord{
		msgAt("alice", false, 0, "hey"),
		msgAt("alice", true, 10*24*time.Hour, "sorry!"),
	}
	p := DetectConnectionPatterns(context.Background(), msgs)

	if len(p.GhostingEvents) != 1 {
		t.Fatalf("期望 1 个 ghosting 事件, 实际得到 %d", len(p.GhostingEvents))
	}
	g := p.GhostingEvents[0]
	if g.GapDays != 10 {
		t.Errorf("期望间隔 10 天, 实际得到 %d", g.GapDays)
	}
	if g.WhoGhosted != sideThem {
		t.Errorf("期望 ghost 方为 them, 实际得到 %s", g.WhoGhosted)
	}

	if len(p.ReconnectionEvents) != 1 {
		t.Fatalf("期望 1 个重联事件, 实际得到 %d", len(p.ReconnectionEvents))
	}
	r := p.ReconnectionEvents[0]
	if r.GapDays != 10 {
		t.Errorf("期望间隔 10 天, 实际得到 %d", r.GapDays)
	}
	if r.WhoReconnected != sideYou {
		t.Errorf("期望重联方为 you, 实际得到 %s", r.WhoReconnected)
	}
}

func TestDetectConnectionPatterns_ShortGapIgnored(t *testing.T) {
	msgs := []model.MessageRecord{
		msgAt("alice", false, 0, "hey"),
		msgAt("alice", true, 6*24*time.Hour, "hi"), // 6 天, 不足 7 天
	}
	p := DetectConnectionPatterns(context.Background(), msgs)
	if len(p.GhostingEvents) != 0 {
		t.Errorf("6 天间隔不应算 ghosting, 实际得到 %d 个事件", len(p.GhostingEvents))
	}
}

func TestDetectConnectionPatterns_EventSymmetry(t *testing.T) {
	// 制造超过 TopN 上限的间隔, 截断后两个列表仍须一一对应
	var msgs []model.MessageRecord
	for c := 0; c < 4; c++ {
		id := fmt.Sprintf("c%d", c)
		for i := 0; i < 4; i++ {
			gap := time.Duration(i) * time.Duration(8+c) * 24 * time.Hour
			msgs = append(msgs, msgAt(id, i%2 == 0, gap, "x"))
		}
	}
	p := DetectConnectionPatterns(context.Background(), msgs)
	if len(p.GhostingEvents) != len(p.ReconnectionEvents) {
		t.Fatalf("两个事件列表长度必须一致: %d vs %d", len(p.GhostingEvents), len(p.ReconnectionEvents))
	}
	if len(p.GhostingEvents) > GhostingTopN {
		t.Errorf("ghosting 事件超出上限: %d", len(p.GhostingEvents))
	}
	for i := range p.GhostingEvents {
		if p.GhostingEvents[i].ContactID != p.ReconnectionEvents[i].ContactID {
			t.Errorf("第 %d 项联系人不对应: %s vs %s", i, p.GhostingEvents[i].ContactID, p.ReconnectionEvents[i].ContactID)
		}
		if p.GhostingEvents[i].GapDays != p.ReconnectionEvents[i].GapDays {
			t.Errorf("第 %d 项间隔不对应: %d vs %d", i, p.GhostingEvents[i].GapDays, p.ReconnectionEvents[i].GapDays)
		}
	}
	// 排序校验: 间隔降序
	for i := 1; i < len(p.GhostingEvents); i++ {
		if p.GhostingEvents[i].GapDays > p.GhostingEvents[i-1].GapDays {
			t.Errorf("ghosting 事件应按间隔降序排列")
		}
	}
}

func TestDetectConnectionPatterns_IntenseAndStreak(t *testing.T) {
	// 30 条消息挤在 15 分钟内: 速率 2 条/分钟, 既是最长连击也是密集对话
	var msgs []model.MessageRecord
	for i := 0; i < 30; i++ {
		msgs = append(msgs, msgAt("alice", i%2 == 0, time.Duration(i)*30*time.Second, "x"))
	}
	// 另一个联系人慢速长对话: 12 条消息摊在 5 小时, 速率不足
	for i := 0; i < 12; i++ {
		msgs = append(msgs, msgAt("bob", i%2 == 0, time.Duration(i)*25*time.Minute, "y"))
	}
	p := DetectConnectionPatterns(context.Background(), msgs)

	if p.LongestStreak == nil {
		t.Fatal("期望检出最长连击")
	}
	if p.LongestStreak.ContactID != "alice" || p.LongestStreak.MessageCount != 30 {
		t.Errorf("期望最长连击 alice/30, 实际得到 %s/%d", p.LongestStreak.ContactID, p.LongestStreak.MessageCount)
	}

	if len(p.IntenseConversations) != 1 {
		t.Fatalf("期望 1 个密集对话, 实际得到 %d", len(p.IntenseConversations))
	}
	if p.IntenseConversations[0].ContactID != "alice" {
		t.Errorf("期望密集对话属于 alice, 实际得到 %s", p.IntenseConversations[0].ContactID)
	}
}

func TestDetectConnectionPatterns_Empty(t *testing.T) {
	p := DetectConnectionPatterns(context.Background(), nil)
	if p.LongestStreak != nil {
		t.Error("空输入不应有最长连击")
	}
	if len(p.GhostingEvents) != 0 || len(p.ReconnectionEvents) != 0 || len(p.IntenseConversations) != 0 {
		t.Error("空输入应产生空的事件列表")
	}
}
