package insight

import (
	"context"
	"sort"

	"github.com/afumu/chatwrapped/internal/model"
	"github.com/afumu/chatwrapped/internal/nlp"
	"github.com/forPelevin/gomoji"
	"github.com/rivo/uniseg"
)

// emojiAccumulator 单个 emoji 的累计状态。
type emojiAccumulator struct {
	count       int
	byContact   map[string]int
	sentimentSB float64 // 情感得分累加
	sentimentN  int
}

// AnalyzeEmoji 扫描全部消息文本, 统计 emoji 频率、联系人分布、
// 情感上下文和相邻组合。情感打分最多覆盖 SentimentGlobalCap 条消息。
func AnalyzeEmoji(ctx context.Context, messages []model.MessageRecord, scorer nlp.SentimentScorer) model.EmojiDeepDive {
	acc := make(map[string]*emojiAccumulator)
	combos := make(map[[2]string]int)
	total := 0
	scored := 0

	for _, msg := range messages {
		if ctx.Err() != nil {
			break
		}
		if msg.Text == "" {
			continue
		}

		found := extractEmoji(msg.Text, combos)
		if len(found) == 0 {
			continue
		}

		// 消息级情感作为该消息内所有 emoji 的上下文。
		var sentiment float64
		haveSentiment := false
		if scorer != nil && scored < SentimentGlobalCap {
			sentiment = scorer.Score(msg.Text)
			haveSentiment = true
			scored++
		}

		for _, e := range found {
			a := acc[e]
			if a == nil {
				a = &emojiAccumulator{byContact: make(map[string]int)}
				acc[e] = a
			}
			a.count++
			a.byContact[msg.ContactID]++
			if haveSentiment {
				a.sentimentSB += sentiment
				a.sentimentN++
			}
			total++
		}
	}

	return buildDeepDive(acc, combos, total)
}

// extractEmoji 按字素簇遍历文本, 返回其中的 emoji 序列,
// 同时累计相邻 emoji 组合。任何非 emoji 字素都会打断组合。
func extractEmoji(text string, combos map[[2]string]int) []string {
	var found []string
	prev := ""

	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cluster := g.Str()
		if isEmojiCluster(cluster, g.Runes()) {
			found = append(found, cluster)
			if prev != "" {
				combos[[2]string{prev, cluster}]++
			}
			prev = cluster
		} else {
			prev = ""
		}
	}
	return found
}

// isEmojiCluster 判断一个字素簇是否计为 emoji。
// 依据 Unicode emoji 表判定, 并附加排除规则: 低于 EmojiSymbolFloor
// 的单码点符号不算 (普通数字/符号也带 emoji 属性), 多码点序列不受限。
func isEmojiCluster(cluster string, runes []rune) bool {
	if !gomoji.ContainsEmoji(cluster) {
		return false
	}
	if len(runes) == 1 && runes[0] < EmojiSymbolFloor {
		return false
	}
	return true
}

// buildDeepDive 把累计状态整理为排序后的输出, 截断 TopN。
// 排序键为次数降序、emoji 字典序升序, 保证结果确定。
func buildDeepDive(acc map[string]*emojiAccumulator, combos map[[2]string]int, total int) model.EmojiDeepDive {
	dive := model.EmojiDeepDive{
		TotalEmoji:  total,
		UniqueEmoji: len(acc),
	}

	stats := make([]model.EmojiStat, 0, len(acc))
	for e, a := range acc {
		stat := model.EmojiStat{
			Emoji: e,
			Count: a.count,
		}
		if total > 0 {
			stat.PercentOfTotal = float64(a.count) / float64(total)
		}
		stat.MostUsedWith = topContact(a.byContact)
		if a.sentimentN > 0 {
			stat.AverageSentimentContext = a.sentimentSB / float64(a.sentimentN)
		}
		stats = append(stats, stat)
	}
	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Emoji < stats[j].Emoji
	})
	if len(stats) > EmojiTopN {
		stats = stats[:EmojiTopN]
	}
	dive.TopEmoji = stats

	comboList := make([]model.EmojiCombo, 0, len(combos))
	for pair, count := range combos {
		comboList = append(comboList, model.EmojiCombo{First: pair[0], Second: pair[1], Count: count})
	}
	sort.SliceStable(comboList, func(i, j int) bool {
		a, b := comboList[i], comboList[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.First != b.First {
			return a.First < b.First
		}
		return a.Second < b.Second
	})
	if len(comboList) > EmojiComboTopN {
		comboList = comboList[:EmojiComboTopN]
	}
	dive.TopCombos = comboList

	return dive
}

// topContact 返回计数最高的联系人, 平局取字典序较小者。
func topContact(byContact map[string]int) string {
	best := ""
	bestCount := -1
	for id, c := range byContact {
		if c > bestCount || (c == bestCount && id < best) {
			best = id
			bestCount = c
		}
	}
	return best
}
