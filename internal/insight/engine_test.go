package insight

import (
	"context"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/afumu/chatwrapped/internal/model"
)

func newTestEngine() *Engine {
	e := New(&stubScorer{scores: map[string]float64{}}, nil, nil)
	e.now = func() time.Time { return segBase }
	return e
}

func TestAnalyze_EmptyInput(t *testing.T) {
	got, err := newTestEngine().Analyze(context.Background(), nil, Config{WindowDays: 365}, nil)
	if err != nil {
		t.Fatalf("空输入分析失败: %v", err)
	}
	if got.TotalMessagesAnalyzed != 0 {
		t.Errorf("期望消息总数 0, 实际得到 %d", got.TotalMessagesAnalyzed)
	}
	if len(got.RelationshipDynamics) != 0 {
		t.Errorf("空输入不应产生关系画像")
	}
	if len(got.Revelations) != 0 {
		t.Errorf("空输入不应产生洞察")
	}
	if got.TimePeriodDays != 365 {
		t.Errorf("期望窗口 365 天, 实际得到 %d", got.TimePeriodDays)
	}
}

func TestAnalyze_InvalidWindow(t *testing.T) {
	if _, err := newTestEngine().Analyze(context.Background(), nil, Config{WindowDays: 0}, nil); err == nil {
		t.Error("windowDays=0 应返回错误")
	}
	if _, err := newTestEngine().Analyze(context.Background(), nil, Config{WindowDays: -1}, nil); err == nil {
		t.Error("windowDays=-1 应返回错误")
	}
}

func TestAnalyze_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	msgs := []model.MessageRecord{msgAt("alice", true, 0, "hi")}
	if _, err := newTestEngine().Analyze(ctx, msgs, Config{WindowDays: 30}, nil); err != context.Canceled {
		t.Errorf("取消后应返回 context.Canceled, 实际得到 %v", err)
	}
}

// randomMessages 用固定种子生成可复现的消息集。
func randomMessages(seed int64, n int) []model.MessageRecord {
	rng := rand.New(rand.NewSource(seed))
	contacts := []string{"alice", "bob", "carol", "dave"}
	texts := []string{"hey", "on my way", "😂😂", "that is amazing", "ok", "看到了", "🔥 lets go", ""}

	msgs := make([]model.MessageRecord, 0, n)
	for i := 0; i < n; i++ {
		msgs = append(msgs, model.MessageRecord{
			ContactID: contacts[rng.Intn(len(contacts))],
			IsFromMe:  rng.Intn(2) == 0,
			Timestamp: segBase.Add(time.Duration(rng.Intn(90*24*3600)) * time.Second),
			Text:      texts[rng.Intn(len(texts))],
		})
	}
	return msgs
}

func TestAnalyze_Deterministic(t *testing.T) {
	msgs := randomMessages(42, 400)
	engine := newTestEngine()

	first, err := engine.Analyze(context.Background(), msgs, Config{WindowDays: 90}, nil)
	if err != nil {
		t.Fatalf("分析失败: %v", err)
	}
	second, err := engine.Analyze(context.Background(), msgs, Config{WindowDays: 90}, nil)
	if err != nil {
		t.Fatalf("分析失败: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("同一输入两次分析结果必须完全一致")
	}
}

func TestAnalyze_RangeInvariants(t *testing.T) {
	msgs := randomMessages(7, 600)
	got, err := newTestEngine().Analyze(context.Background(), msgs, Config{WindowDays: 90}, nil)
	if err != nil {
		t.Fatalf("分析失败: %v", err)
	}

	for _, rel := range got.RelationshipDynamics {
		if rel.InitiativeScore < -1 || rel.InitiativeScore > 1 {
			t.Errorf("%s 主动性越界: %f", rel.ContactID, rel.InitiativeScore)
		}
		if rel.ChaosScore < 0 || rel.ChaosScore > 1 {
			t.Errorf("%s chaos 越界: %f", rel.ContactID, rel.ChaosScore)
		}
		if rel.PositiveMessagePercent < 0 || rel.PositiveMessagePercent > 1 {
			t.Errorf("%s 正面占比越界: %f", rel.ContactID, rel.PositiveMessagePercent)
		}
		if rel.AverageSentiment < -1 || rel.AverageSentiment > 1 {
			t.Errorf("%s 平均情感越界: %f", rel.ContactID, rel.AverageSentiment)
		}
		if rel.PeakHour < 0 || rel.PeakHour > 23 {
			t.Errorf("%s 高峰小时越界: %d", rel.ContactID, rel.PeakHour)
		}
		if rel.PeakDayOfWeek < 1 || rel.PeakDayOfWeek > 7 {
			t.Errorf("%s 高峰星期越界: %d", rel.ContactID, rel.PeakDayOfWeek)
		}
	}

	fp := got.TemporalFingerprint
	if fp.NightOwlScore < 0 || fp.NightOwlScore > 1 {
		t.Errorf("夜猫得分越界: %f", fp.NightOwlScore)
	}
	if fp.EarlyBirdScore < 0 || fp.EarlyBirdScore > 1 {
		t.Errorf("早鸟得分越界: %f", fp.EarlyBirdScore)
	}
	if fp.WorkHoursPercent < 0 || fp.WorkHoursPercent > 1 {
		t.Errorf("工作时段占比越界: %f", fp.WorkHoursPercent)
	}

	hourTotal := 0
	for _, c := range fp.HourlyActivity {
		hourTotal += c
	}
	if hourTotal != len(msgs) {
		t.Errorf("小时直方图总和应等于消息数: 期望 %d, 实际得到 %d", len(msgs), hourTotal)
	}

	if len(got.ConnectionPatterns.GhostingEvents) != len(got.ConnectionPatterns.ReconnectionEvents) {
		t.Error("ghosting 与重联事件数必须相等")
	}
	for _, stat := range got.EmojiDeepDive.TopEmoji {
		if stat.PercentOfTotal < 0 || stat.PercentOfTotal > 1 {
			t.Errorf("emoji 占比越界: %s %f", stat.Emoji, stat.PercentOfTotal)
		}
	}
}

func TestAnalyze_ProgressMonotonic(t *testing.T) {
	msgs := randomMessages(3, 100)
	var fractions []float64
	_, err := newTestEngine().Analyze(context.Background(), msgs, Config{WindowDays: 30}, func(f float64, _ string) {
		fractions = append(fractions, f)
	})
	if err != nil {
		t.Fatalf("分析失败: %v", err)
	}
	if len(fractions) == 0 {
		t.Fatal("应至少上报一次进度")
	}
	for i := 1; i < len(fractions); i++ {
		if fractions[i] < fractions[i-1] {
			t.Errorf("进度必须单调递增: %v", fractions)
		}
	}
	if last := fractions[len(fractions)-1]; last != 1.0 {
		t.Errorf("最后一次进度应为 1.0, 实际得到 %f", last)
	}
}
