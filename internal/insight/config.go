// Package insight 实现消息分析与关系洞察引擎。
// 输入是一段时间窗口内的全部消息记录, 输出一个不可变的 WrappedInsights。
package insight

import (
	"fmt"
	"time"
)

// 引擎的全部固定阈值。集中命名, 算法代码不允许出现裸常量,
// 各调用点必须引用同一个值, 避免阈值漂移。
const (
	// ConversationGap 相邻消息间隔超过该值即切分新对话。
	ConversationGap = 6 * time.Hour

	// GhostingGapDays 相邻消息间隔达到该天数记为一次 ghosting。
	GhostingGapDays = 7

	// ResponseGapCeiling 回复时长统计的上限。超过该值的间隔不再视为
	// "同一轮交流"中的回复: 隔夜沉默不计入平均回复时长。
	ResponseGapCeiling = 2 * time.Hour

	// ChaosMinMessages 消息数低于该值时 chaos 得分恒为 0。
	ChaosMinMessages = 10
	// ChaosBucket chaos 打分的时间桶宽度。
	ChaosBucket = time.Minute
	// ChaosPeakWeight / ChaosAvgWeight / ChaosNormalizer 组合出
	// chaos = min(1, (peak*0.7 + avg*0.3) / 5)。
	ChaosPeakWeight = 0.7
	ChaosAvgWeight  = 0.3
	ChaosNormalizer = 5.0

	// PositiveSentimentFloor 得分高于该值的消息计为正面消息。
	PositiveSentimentFloor = 0.1

	// SentimentPerContactCap 每个联系人最多打分的文本数。
	SentimentPerContactCap = 100
	// SentimentGlobalCap 全局范围 (emoji 情感上下文) 最多打分的消息数。
	SentimentGlobalCap = 200

	// VibeSampleTexts / VibeSampleChars 氛围分类的取样上限。
	VibeSampleTexts = 50
	VibeSampleChars = 1000

	// IntenseThreadMinMessages 密集对话判定的最小消息数。
	IntenseThreadMinMessages = 10
	// IntenseRatePerMinute 密集对话判定的消息速率下限 (条/分钟)。
	IntenseRatePerMinute = 0.5

	// GhostingTopN / IntenseTopN 输出截断。
	GhostingTopN = 10
	IntenseTopN  = 5

	// EmojiTopN / EmojiComboTopN 输出截断。
	EmojiTopN      = 15
	EmojiComboTopN = 5

	// EmojiSymbolFloor 低于该码点的单码点符号不计为 emoji
	// (排除被 Unicode emoji 属性误伤的数字/杂项符号),
	// 多码点序列 (如变体选择符、肤色修饰) 不受此限制。
	EmojiSymbolFloor = 0x1F000

	// EntitySampleTexts 实体提取最多扫描的非空文本数 (性能上界)。
	EntitySampleTexts = 500
	// EntityMinLength 长度不足该值的实体被过滤。
	EntityMinLength = 3
	// EntityTopN 每个类别保留的实体数。
	EntityTopN = 10

	// SleepWindowHours 推断睡眠窗口的长度。
	SleepWindowHours = 6

	// WorkHourStart / WorkHourEnd 工作时段 [9,17], 闭区间。
	WorkHourStart = 9
	WorkHourEnd   = 17

	// ChronotypeMultiplier 夜猫/早鸟得分的放大系数, 结果截断到 [0,1]。
	ChronotypeMultiplier = 3.0

	// UnknownContactID 该标识符的联系人不参与关系分析。
	UnknownContactID = "Unknown"
)

// Config 一次分析运行的配置。
// WindowDays 只影响报告标签, 不改变任何算法阈值。
type Config struct {
	WindowDays int `json:"windowDays"`
}

// Validate 在分析开始前检查配置。这是引擎唯一的调用方错误。
func (c Config) Validate() error {
	if c.WindowDays <= 0 {
		return fmt.Errorf("无效的 windowDays: %d, 必须为正数", c.WindowDays)
	}
	return nil
}
