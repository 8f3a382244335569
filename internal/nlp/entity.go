package nlp

import (
	"github.com/jdkato/prose/v2"
	"github.com/rs/zerolog/log"
)

// ProseTagger 基于 prose 的命名实体标注器。
type ProseTagger struct{}

// NewProseTagger 创建实体标注器。
func NewProseTagger() *ProseTagger {
	return &ProseTagger{}
}

// Tag 标注文本中的命名实体。文本无法解析时返回空列表。
func (t *ProseTagger) Tag(text string) []TaggedEntity {
	if text == "" {
		return nil
	}
	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithExtraction(true))
	if err != nil {
		log.Debug().Err(err).Msg("实体标注失败, 跳过该文本")
		return nil
	}

	var out []TaggedEntity
	for _, ent := range doc.Entities() {
		out = append(out, TaggedEntity{
			Text:  ent.Text,
			Label: mapProseLabel(ent.Label),
		})
	}
	return out
}

// mapProseLabel 把 prose 的标签映射到引擎的四类。
func mapProseLabel(label string) string {
	switch label {
	case "PERSON":
		return "person"
	case "GPE", "LOC", "FAC", "LOCATION":
		return "place"
	case "ORG", "ORGANIZATION", "NORP":
		return "organization"
	default:
		return "other"
	}
}
