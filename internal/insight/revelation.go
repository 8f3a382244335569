package insight

import (
	"fmt"

	"github.com/afumu/chatwrapped/internal/model"
)

// 洞察规则的阈值。
const (
	revelationInitiativeFloor   = 0.3
	revelationStorytellerChars  = 100
	revelationSentimentContrast = 0.2
	revelationChronotypeFloor   = 0.6
	revelationGhostingMinEvents = 3
	revelationStreakMinMessages = 50
	revelationEmojiShareFloor   = 0.25
	revelationChaosFloor        = 0.7
)

// RevelationInput 洞察合成的输入, 全部来自前序阶段的只读输出。
type RevelationInput struct {
	Relationships    []model.RelationshipDynamics
	Temporal         model.TemporalFingerprint
	Patterns         model.ConnectionPatterns
	Emoji            model.EmojiDeepDive
	AvgMessageLength float64 // 我方消息的平均字符数
}

// GenerateRevelations 按固定顺序应用阈值规则, 合成洞察亮点。
// 纯函数: 同一输入必得同一输出; 数据不满足条件时直接跳过该条,
// 从不报错。
func GenerateRevelations(in RevelationInput) []model.AIRevelation {
	var out []model.AIRevelation

	// 规则 1: 头号联系人的主动性。
	if len(in.Relationships) > 0 {
		top := in.Relationships[0]
		if top.InitiativeScore > revelationInitiativeFloor {
			out = append(out, model.AIRevelation{
				Icon:     "🚀",
				Headline: "对话发起人是你",
				Detail:   fmt.Sprintf("和 %s 的对话里, 有 %.0f%% 是你先开口的。", top.ContactID, (top.InitiativeScore/2+0.5)*100),
				Category: model.RevelationRelationship,
			})
		} else if top.InitiativeScore < -revelationInitiativeFloor {
			out = append(out, model.AIRevelation{
				Icon:     "📨",
				Headline: "对方总是先找你",
				Detail:   fmt.Sprintf("%s 几乎承包了你们对话的开场白。", top.ContactID),
				Category: model.RevelationRelationship,
			})
		}
	}

	// 规则 2: 小作文体质。
	if in.AvgMessageLength > revelationStorytellerChars {
		out = append(out, model.AIRevelation{
			Icon:     "📖",
			Headline: "小作文选手",
			Detail:   fmt.Sprintf("你的消息平均 %.0f 个字符, 远超常人。", in.AvgMessageLength),
			Category: model.RevelationQuirk,
		})
	}

	// 规则 3: 前两名联系人的情感反差。
	if len(in.Relationships) >= 2 {
		a, b := in.Relationships[0], in.Relationships[1]
		diff := a.AverageSentiment - b.AverageSentiment
		if diff > revelationSentimentContrast || diff < -revelationSentimentContrast {
			happier, other := a, b
			if diff < 0 {
				happier, other = b, a
			}
			out = append(out, model.AIRevelation{
				Icon:     "⚖️",
				Headline: "两种完全不同的聊天状态",
				Detail:   fmt.Sprintf("和 %s 聊天时你们明显比和 %s 聊天时更阳光。", happier.ContactID, other.ContactID),
				Category: model.RevelationComparison,
			})
		}
	}

	// 规则 4: 作息类型。夜猫优先于早鸟。
	if in.Temporal.NightOwlScore > revelationChronotypeFloor {
		out = append(out, model.AIRevelation{
			Icon:     "🦉",
			Headline: "深夜信号塔",
			Detail:   "你相当一部分消息发生在 22 点之后, 夜越深话越多。",
			Category: model.RevelationPattern,
		})
	} else if in.Temporal.EarlyBirdScore > revelationChronotypeFloor {
		out = append(out, model.AIRevelation{
			Icon:     "🐦",
			Headline: "清晨第一条消息",
			Detail:   "你习惯在早上 5 到 8 点之间开启对话。",
			Category: model.RevelationPattern,
		})
	}

	// 规则 5: 失联与重逢。
	if len(in.Patterns.GhostingEvents) >= revelationGhostingMinEvents {
		out = append(out, model.AIRevelation{
			Icon:     "👻",
			Headline: "失联又重逢",
			Detail:   fmt.Sprintf("这段时间里有 %d 次超过一周的沉默, 但你们都回来了。", len(in.Patterns.GhostingEvents)),
			Category: model.RevelationPattern,
		})
	}

	// 规则 6: 最长的密集对话。
	if streak := in.Patterns.LongestStreak; streak != nil && streak.MessageCount > revelationStreakMinMessages {
		out = append(out, model.AIRevelation{
			Icon:     "🏆",
			Headline: "一口气聊了个痛快",
			Detail:   fmt.Sprintf("你和 %s 在一次对话里连发了 %d 条消息。", streak.ContactID, streak.MessageCount),
			Category: model.RevelationSuperlative,
		})
	}

	// 规则 7: 招牌 emoji。
	if len(in.Emoji.TopEmoji) > 0 && in.Emoji.TopEmoji[0].PercentOfTotal > revelationEmojiShareFloor {
		top := in.Emoji.TopEmoji[0]
		out = append(out, model.AIRevelation{
			Icon:     top.Emoji,
			Headline: "你的招牌表情",
			Detail:   fmt.Sprintf("%s 占了你全部 emoji 的 %.0f%%。", top.Emoji, top.PercentOfTotal*100),
			Category: model.RevelationQuirk,
		})
	}

	// 规则 8: 连珠炮型关系。
	for _, rel := range in.Relationships {
		if rel.ChaosScore > revelationChaosFloor {
			out = append(out, model.AIRevelation{
				Icon:     "⚡",
				Headline: "连珠炮式聊天",
				Detail:   fmt.Sprintf("和 %s 聊起来就是刷屏级别的你来我往。", rel.ContactID),
				Category: model.RevelationRelationship,
			})
			break
		}
	}

	return out
}
