package insight

import (
	"context"
	"sort"

	"github.com/afumu/chatwrapped/internal/model"
	"github.com/afumu/chatwrapped/internal/nlp"
)

// ExtractEntities 在最多 EntitySampleTexts 条非空文本上做命名实体提取,
// 按类别分桶并按频次排行。取前 N 条是刻意的性能上界, 不是随机采样,
// 因而结果对同一输入完全确定。tagger 为 nil 时返回空结果。
func ExtractEntities(ctx context.Context, messages []model.MessageRecord, tagger nlp.EntityTagger) model.WorldMapInsights {
	var insights model.WorldMapInsights
	if tagger == nil {
		return insights
	}

	type bucket map[string]int
	places := bucket{}
	people := bucket{}
	orgs := bucket{}

	scanned := 0
	for _, msg := range messages {
		if ctx.Err() != nil {
			break
		}
		if msg.Text == "" {
			continue
		}
		scanned++
		if scanned > EntitySampleTexts {
			break
		}

		for _, ent := range tagger.Tag(msg.Text) {
			if len([]rune(ent.Text)) < EntityMinLength {
				continue
			}
			switch ent.Label {
			case string(model.EntityPlace):
				places[ent.Text]++
			case string(model.EntityPerson):
				people[ent.Text]++
			case string(model.EntityOrganization):
				orgs[ent.Text]++
			}
		}
	}

	insights.TopPlaces = rankEntities(places, model.EntityPlace)
	insights.TopPeople = rankEntities(people, model.EntityPerson)
	insights.TopOrganizations = rankEntities(orgs, model.EntityOrganization)
	return insights
}

// rankEntities 按频次降序排行, 平局按文本字典序, 截断到 EntityTopN。
func rankEntities(counts map[string]int, typ model.EntityType) []model.NamedEntity {
	out := make([]model.NamedEntity, 0, len(counts))
	for text, count := range counts {
		out = append(out, model.NamedEntity{Text: text, Count: count, Type: typ})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Text < out[j].Text
	})
	if len(out) > EntityTopN {
		out = out[:EntityTopN]
	}
	return out
}
