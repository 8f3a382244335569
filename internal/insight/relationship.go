package insight

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/afumu/chatwrapped/internal/model"
	"github.com/afumu/chatwrapped/internal/nlp"
	"github.com/rs/zerolog/log"
)

// vibeAnchors 氛围分类的锚点短语。分类即求与各锚点的最小语义距离。
var vibeAnchors = []struct {
	category model.VibeCategory
	anchor   string
}{
	{model.VibeHype, "lets go!!! this is amazing, so hyped, best news ever"},
	{model.VibeIntellectual, "interesting point, I read an article about this theory and the evidence behind it"},
	{model.VibeSupportive, "I'm here for you, that sounds really hard, proud of you, sending love"},
	{model.VibePlanning, "what time works for you? let's meet thursday, I'll book the table"},
	{model.VibeChaos, "lmaooo no way, wait what, I can't believe that just happened"},
	{model.VibeFlirty, "thinking about you, you looked so good, can't wait to see you again"},
}

// AnalyzeRelationships 为每个合格联系人计算关系画像。
// 结果按消息总数降序。没有合格联系人时返回空列表, 从不报错。
func AnalyzeRelationships(ctx context.Context, messages []model.MessageRecord, scorer nlp.SentimentScorer, embedder nlp.Embedder) []model.RelationshipDynamics {
	order, groups := groupByContact(messages)

	var result []model.RelationshipDynamics
	for _, contactID := range order {
		if ctx.Err() != nil {
			return result
		}
		result = append(result, analyzeContact(ctx, contactID, groups[contactID], scorer, embedder))
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].TotalMessages != result[j].TotalMessages {
			return result[i].TotalMessages > result[j].TotalMessages
		}
		return result[i].ContactID < result[j].ContactID
	})
	return result
}

func analyzeContact(ctx context.Context, contactID string, messages []model.MessageRecord, scorer nlp.SentimentScorer, embedder nlp.Embedder) model.RelationshipDynamics {
	sorted := sortByTime(messages)
	threads := SegmentConversations(contactID, sorted)

	dyn := model.RelationshipDynamics{
		ContactID:         contactID,
		TotalMessages:     len(sorted),
		ConversationCount: len(threads),
	}

	// 主动性: 由我开启的对话占比映射到 [-1,1]。
	dyn.InitiativeScore = initiativeScore(threads)

	// 收发平衡: 接收数按 1 保底, 避免除零。
	sent, received := 0, 0
	for _, msg := range sorted {
		if msg.IsFromMe {
			sent++
		} else {
			received++
		}
	}
	dyn.EngagementBalance = float64(sent) / math.Max(float64(received), 1)

	// 情感统计: 每个联系人最多取样 SentimentPerContactCap 条文本。
	scores := sampleSentiments(sorted, scorer, SentimentPerContactCap)
	dyn.AverageSentiment = mean(scores)
	dyn.SentimentVariance = sampleVariance(scores)
	dyn.PositiveMessagePercent = positivePercent(scores)

	dyn.PeakHour, dyn.PeakDayOfWeek = peakHourAndDay(sorted)

	if len(threads) > 0 {
		dyn.AverageThreadLength = float64(len(sorted)) / float64(len(threads))
	}

	dyn.ChaosScore = chaosScore(sorted)
	dyn.AvgResponseTimeMinutes = avgResponseMinutes(sorted)
	dyn.VibeCategory = classifyVibe(ctx, sorted, embedder)

	return dyn
}

// initiativeScore 把我方开启对话的比例映射到 [-1,1]。
// 0 个对话时返回 0。
func initiativeScore(threads []model.ConversationThread) float64 {
	if len(threads) == 0 {
		return 0
	}
	started := 0
	for _, t := range threads {
		if len(t.Messages) > 0 && t.Messages[0].IsFromMe {
			started++
		}
	}
	score := (float64(started)/float64(len(threads)) - 0.5) * 2
	return clamp(score, -1, 1)
}

// sampleSentiments 取前 cap 条非空文本打分。取样顺序固定 (时间升序),
// 保证同一输入得到同一结果。
func sampleSentiments(sorted []model.MessageRecord, scorer nlp.SentimentScorer, capN int) []float64 {
	if scorer == nil {
		return nil
	}
	var scores []float64
	for _, msg := range sorted {
		if msg.Text == "" {
			continue
		}
		scores = append(scores, scorer.Score(msg.Text))
		if len(scores) >= capN {
			break
		}
	}
	return scores
}

// peakHourAndDay 统计小时/星期的众数。平局取更小的槽位值,
// 结果与遍历顺序无关。
func peakHourAndDay(messages []model.MessageRecord) (int, int) {
	var hours [24]int
	var days [8]int // 1-7, ISO 周一=1
	for _, msg := range messages {
		hours[msg.Timestamp.Hour()]++
		days[isoWeekday(msg.Timestamp.Weekday())]++
	}

	peakHour := 0
	for h := 1; h < 24; h++ {
		if hours[h] > hours[peakHour] {
			peakHour = h
		}
	}
	peakDay := 1
	for d := 2; d <= 7; d++ {
		if days[d] > days[peakDay] {
			peakDay = d
		}
	}
	return peakHour, peakDay
}

// chaosScore 把消息落到 1 分钟桶里, 用峰值速率和平均速率的
// 加权组合衡量"连珠炮"程度。消息数不超过 ChaosMinMessages 时为 0。
func chaosScore(sorted []model.MessageRecord) float64 {
	if len(sorted) <= ChaosMinMessages {
		return 0
	}
	buckets := make(map[int64]int)
	for _, msg := range sorted {
		buckets[msg.Timestamp.Unix()/int64(ChaosBucket.Seconds())]++
	}
	peak := 0
	total := 0
	for _, c := range buckets {
		total += c
		if c > peak {
			peak = c
		}
	}
	avg := float64(total) / float64(len(buckets))
	score := (ChaosPeakWeight*float64(peak) + ChaosAvgWeight*avg) / ChaosNormalizer
	return math.Min(1, score)
}

// avgResponseMinutes 统计"对方消息后我方紧跟回复"的平均时长 (分钟)。
// 超过 ResponseGapCeiling 的间隔视为新一轮交流, 不计入。
func avgResponseMinutes(sorted []model.MessageRecord) float64 {
	var total float64
	count := 0
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if prev.IsFromMe || !cur.IsFromMe {
			continue
		}
		gap := cur.Timestamp.Sub(prev.Timestamp)
		if gap < 0 || gap > ResponseGapCeiling {
			continue
		}
		total += gap.Minutes()
		count++
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// classifyVibe 拼接对方文本样本, 与各锚点求语义距离, 取最近的类别。
// embedding 能力不可用时回退为 Neutral。
func classifyVibe(ctx context.Context, sorted []model.MessageRecord, embedder nlp.Embedder) model.VibeCategory {
	if embedder == nil {
		return model.VibeNeutral
	}

	var sb strings.Builder
	texts := 0
	for _, msg := range sorted {
		if msg.IsFromMe || msg.Text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(msg.Text)
		texts++
		if texts >= VibeSampleTexts || sb.Len() >= VibeSampleChars {
			break
		}
	}
	sample := sb.String()
	if len(sample) > VibeSampleChars {
		sample = sample[:VibeSampleChars]
	}
	if strings.TrimSpace(sample) == "" {
		return model.VibeNeutral
	}

	best := model.VibeNeutral
	bestDist := math.Inf(1)
	for _, a := range vibeAnchors {
		dist, err := embedder.Distance(ctx, sample, a.anchor)
		if err != nil {
			log.Warn().Err(err).Msg("语义距离计算失败, 氛围回退为 Neutral")
			return model.VibeNeutral
		}
		if dist < bestDist {
			bestDist = dist
			best = a.category
		}
	}
	return best
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// sampleVariance n-1 分母的样本方差, 样本不足 2 个时为 0。
func sampleVariance(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	sum := 0.0
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return sum / float64(len(xs)-1)
}

func positivePercent(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	pos := 0
	for _, x := range xs {
		if x > PositiveSentimentFloor {
			pos++
		}
	}
	return float64(pos) / float64(len(xs))
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
