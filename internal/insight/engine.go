package insight

import (
	"context"
	"time"

	"github.com/afumu/chatwrapped/internal/model"
	"github.com/afumu/chatwrapped/internal/nlp"
	"github.com/rs/zerolog/log"
)

// ProgressFunc 进度回调: fraction 单调递增且落在 [0,1],
// step 是人类可读的当前阶段标签。回调是引擎唯一可观察的副作用。
type ProgressFunc func(fraction float64, step string)

// Engine 无状态的分析流水线。每次调用按需构建, 不持有任何持久资源,
// 可以安全地为每个请求各建一个实例。
type Engine struct {
	sentiment nlp.SentimentScorer
	tagger    nlp.EntityTagger
	embedder  nlp.Embedder
	now       func() time.Time
}

// New 创建引擎。scorer/tagger/embedder 任意一个为 nil 都是合法的,
// 对应阶段会退化为文档化的中性默认值。
func New(scorer nlp.SentimentScorer, tagger nlp.EntityTagger, embedder nlp.Embedder) *Engine {
	return &Engine{
		sentiment: scorer,
		tagger:    tagger,
		embedder:  embedder,
		now:       time.Now,
	}
}

// Analyze 对同一份不可变消息列表依次运行各分析阶段,
// 组装成一个全新的 WrappedInsights。阶段之间检查取消;
// 被取消的运行丢弃所有中间产物, 绝不发布半成品。
func (e *Engine) Analyze(ctx context.Context, messages []model.MessageRecord, cfg Config, progress ProgressFunc) (*model.WrappedInsights, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	report := func(fraction float64, step string) {
		if progress != nil {
			progress(fraction, step)
		}
	}

	started := e.now()
	log.Info().Int("messages", len(messages)).Int("window_days", cfg.WindowDays).Msg("开始分析")

	report(0.05, "整理消息")
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	relationships := AnalyzeRelationships(ctx, messages, e.sentiment, e.embedder)
	report(0.35, "分析关系画像")
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	temporal := AnalyzeTemporal(messages)
	report(0.5, "分析时间节律")
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	patterns := DetectConnectionPatterns(ctx, messages)
	report(0.65, "检测联系模式")
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	emoji := AnalyzeEmoji(ctx, messages, e.sentiment)
	report(0.78, "分析 emoji")
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entities := ExtractEntities(ctx, messages, e.tagger)
	report(0.9, "提取命名实体")
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	revelations := GenerateRevelations(RevelationInput{
		Relationships:    relationships,
		Temporal:         temporal,
		Patterns:         patterns,
		Emoji:            emoji,
		AvgMessageLength: avgSentLength(messages),
	})
	report(0.97, "合成洞察")

	insights := &model.WrappedInsights{
		GeneratedAt:           started,
		TimePeriodDays:        cfg.WindowDays,
		TotalMessagesAnalyzed: len(messages),
		RelationshipDynamics:  relationships,
		TemporalFingerprint:   temporal,
		ConnectionPatterns:    patterns,
		EmojiDeepDive:         emoji,
		WorldMapInsights:      entities,
		Revelations:           revelations,
	}

	report(1.0, "完成")
	log.Info().
		Int("contacts", len(relationships)).
		Int("revelations", len(revelations)).
		Dur("elapsed", e.now().Sub(started)).
		Msg("分析完成")
	return insights, nil
}

// avgSentLength 我方非空消息的平均字符数 (按 rune 计)。
func avgSentLength(messages []model.MessageRecord) float64 {
	total, count := 0, 0
	for _, msg := range messages {
		if !msg.IsFromMe || msg.Text == "" {
			continue
		}
		total += len([]rune(msg.Text))
		count++
	}
	if count == 0 {
		return 0
	}
	return float64(total) / float64(count)
}
