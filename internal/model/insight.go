package model

import "time"

// MessageRecord 标准化后的单条消息事件。
// 由 store 层提供，引擎只读，绝不修改。
type MessageRecord struct {
	ContactID     string    `json:"contactId"`     // 联系人ID
	IsFromMe      bool      `json:"isFromMe"`      // 是否我发送
	Timestamp     time.Time `json:"timestamp"`     // 消息时间
	Text          string    `json:"text"`          // 文本内容，可为空
	HasAttachment bool      `json:"hasAttachment"` // 是否带附件
}

// ConversationThread 一个联系人的一段连续对话。
// 内部相邻消息间隔不超过分段阈值（6 小时）。
type ConversationThread struct {
	ContactID string          `json:"contactId"`
	Messages  []MessageRecord `json:"messages"`
	StartTime time.Time       `json:"startTime"`
	EndTime   time.Time       `json:"endTime"`
}

// VibeCategory 联系人语义氛围分类。
type VibeCategory string

const (
	VibeHype         VibeCategory = "Hype"
	VibeIntellectual VibeCategory = "Intellectual"
	VibeSupportive   VibeCategory = "Supportive"
	VibePlanning     VibeCategory = "Planning"
	VibeChaos        VibeCategory = "Chaos"
	VibeFlirty       VibeCategory = "Flirty"
	VibeNeutral      VibeCategory = "Neutral"
)

// RelationshipDynamics 单个联系人的关系画像。
type RelationshipDynamics struct {
	ContactID              string       `json:"contactId"`
	TotalMessages          int          `json:"totalMessages"`
	ConversationCount      int          `json:"conversationCount"`
	InitiativeScore        float64      `json:"initiativeScore"`        // [-1,1] 正值=我主动
	EngagementBalance      float64      `json:"engagementBalance"`      // 发送/接收, 接收按 1 保底
	AverageSentiment       float64      `json:"averageSentiment"`       // [-1,1]
	SentimentVariance      float64      `json:"sentimentVariance"`      // 样本方差 (n-1)
	PositiveMessagePercent float64      `json:"positiveMessagePercent"` // [0,1]
	AverageThreadLength    float64      `json:"averageThreadLength"`
	PeakHour               int          `json:"peakHour"`      // 0-23
	PeakDayOfWeek          int          `json:"peakDayOfWeek"` // 1-7 (周一到周日)
	ChaosScore             float64      `json:"chaosScore"`    // [0,1]
	AvgResponseTimeMinutes float64      `json:"avgResponseTimeMinutes"`
	VibeCategory           VibeCategory `json:"vibeCategory"`
}

// TemporalFingerprint 全局时间节律画像。
type TemporalFingerprint struct {
	HourlyActivity        [24]int `json:"hourlyActivity"`        // 按小时 0-23
	WeekdayActivity       [7]int  `json:"weekdayActivity"`       // 按星期, 下标0=周一
	InferredSleepStart    int     `json:"inferredSleepStart"`    // 0-23
	InferredSleepEnd      int     `json:"inferredSleepEnd"`      // 0-23
	WorkHoursPercent      float64 `json:"workHoursPercent"`      // [0,1]
	WeekendVsWeekdayRatio float64 `json:"weekendVsWeekdayRatio"` // 周末/工作日, 已归一
	NightOwlScore         float64 `json:"nightOwlScore"`         // [0,1]
	EarlyBirdScore        float64 `json:"earlyBirdScore"`        // [0,1]
}

// GhostingEvent 超过阈值的联系中断。
type GhostingEvent struct {
	ContactID       string    `json:"contactId"`
	GapDays         int       `json:"gapDays"` // >= 7
	LastMessageDate time.Time `json:"lastMessageDate"`
	WhoGhosted      string    `json:"whoGhosted"` // "you" | "them"
}

// ReconnectionEvent 中断之后的重新联系，与 GhostingEvent 一一对应。
type ReconnectionEvent struct {
	ContactID      string    `json:"contactId"`
	GapDays        int       `json:"gapDays"`
	ReconnectDate  time.Time `json:"reconnectDate"`
	WhoReconnected string    `json:"whoReconnected"` // "you" | "them"
}

// ConversationStreak 一段密集对话。
type ConversationStreak struct {
	ContactID       string    `json:"contactId"`
	MessageCount    int       `json:"messageCount"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	DurationMinutes float64   `json:"durationMinutes"`
}

// ConnectionPatterns 社交联系模式的汇总。
type ConnectionPatterns struct {
	GhostingEvents       []GhostingEvent      `json:"ghostingEvents"`       // 按间隔降序, 最多10条
	ReconnectionEvents   []ReconnectionEvent  `json:"reconnectionEvents"`   // 与 ghosting 对称
	IntenseConversations []ConversationStreak `json:"intenseConversations"` // 按消息数降序, 最多5条
	LongestStreak        *ConversationStreak  `json:"longestStreak"`        // 无数据时为 nil
}

// EmojiStat 单个 emoji 的使用统计。
type EmojiStat struct {
	Emoji                   string  `json:"emoji"`
	Count                   int     `json:"count"`
	PercentOfTotal          float64 `json:"percentOfTotal"` // [0,1]
	MostUsedWith            string  `json:"mostUsedWith"`   // 联系人ID
	AverageSentimentContext float64 `json:"averageSentimentContext"`
}

// EmojiCombo 相邻出现的 emoji 组合。
type EmojiCombo struct {
	First  string `json:"first"`
	Second string `json:"second"`
	Count  int    `json:"count"`
}

// EmojiDeepDive emoji 分析结果。
type EmojiDeepDive struct {
	TopEmoji    []EmojiStat  `json:"topEmoji"`    // 按次数降序, 最多15个
	TopCombos   []EmojiCombo `json:"topCombos"`   // 最多5个
	TotalEmoji  int          `json:"totalEmoji"`  // emoji 总出现次数
	UniqueEmoji int          `json:"uniqueEmoji"` // 不同 emoji 数
}

// EntityType 命名实体类别。
type EntityType string

const (
	EntityPlace        EntityType = "place"
	EntityPerson       EntityType = "person"
	EntityOrganization EntityType = "organization"
	EntityOther        EntityType = "other"
)

// NamedEntity 被提及的命名实体。
type NamedEntity struct {
	Text  string     `json:"text"`
	Count int        `json:"count"`
	Type  EntityType `json:"type"`
}

// WorldMapInsights 命名实体提及排行。
type WorldMapInsights struct {
	TopPlaces        []NamedEntity `json:"topPlaces"`        // 最多10条
	TopPeople        []NamedEntity `json:"topPeople"`        // 最多10条
	TopOrganizations []NamedEntity `json:"topOrganizations"` // 最多10条
}

// RevelationCategory 洞察条目的类别。
type RevelationCategory string

const (
	RevelationComparison   RevelationCategory = "comparison"
	RevelationRelationship RevelationCategory = "relationship"
	RevelationPattern      RevelationCategory = "pattern"
	RevelationSuperlative  RevelationCategory = "superlative"
	RevelationQuirk        RevelationCategory = "quirk"
)

// AIRevelation 一条规则合成的洞察亮点。
type AIRevelation struct {
	Icon     string             `json:"icon"`
	Headline string             `json:"headline"`
	Detail   string             `json:"detail"`
	Category RevelationCategory `json:"category"`
}

// WrappedInsights 一次分析运行的完整输出。
// 产出后不可变, 重新分析只会生成新的实例。
type WrappedInsights struct {
	GeneratedAt           time.Time              `json:"generatedAt"`
	TimePeriodDays        int                    `json:"timePeriodDays"`
	TotalMessagesAnalyzed int                    `json:"totalMessagesAnalyzed"`
	RelationshipDynamics  []RelationshipDynamics `json:"relationshipDynamics"` // 按消息总数降序
	TemporalFingerprint   TemporalFingerprint    `json:"temporalFingerprint"`
	ConnectionPatterns    ConnectionPatterns     `json:"connectionPatterns"`
	EmojiDeepDive         EmojiDeepDive          `json:"emojiDeepDive"`
	WorldMapInsights      WorldMapInsights       `json:"worldMapInsights"`
	Revelations           []AIRevelation         `json:"revelations"`
}
