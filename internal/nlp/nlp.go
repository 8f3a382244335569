// Package nlp 定义引擎消费的三个外部 NLP 能力的窄接口。
// 引擎核心不依赖任何具体 NLP 库的 API 形态, 便于替换实现。
package nlp

import "context"

// SentimentScorer 对一段文本给出情感得分, 范围 [-1,1]。
// 空文本或过短文本必须返回中性值 0 而不是报错。
type SentimentScorer interface {
	Score(text string) float64
}

// TaggedEntity 一次命名实体标注的结果。
type TaggedEntity struct {
	Text  string
	Label string // "person" | "place" | "organization" | "other"
}

// EntityTagger 对文本做词粒度的命名实体标注。
type EntityTagger interface {
	Tag(text string) []TaggedEntity
}

// Embedder 计算两段文本的语义距离, 越小越相似。
// 可能不可用 (返回 error), 调用方需回退到默认分类。
type Embedder interface {
	Distance(ctx context.Context, a, b string) (float64, error)
}
