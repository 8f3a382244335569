package nlp

import (
	"strings"

	"github.com/jonreiter/govader"
)

// VaderScorer 基于 VADER 词典的本地情感打分器。
// 完全确定性, 不需要网络, 是默认的 SentimentScorer 实现。
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderScorer 创建情感打分器。
func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score 返回 compound 得分, 范围 [-1,1]。空文本返回 0。
func (s *VaderScorer) Score(text string) float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	return s.analyzer.PolarityScores(text).Compound
}
