package nlp

import (
	"context"
	"fmt"
	"math"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIEmbedder 通过 OpenAI 兼容接口计算句向量余弦距离。
// BaseURL 可指向任何兼容 /v1/embeddings 的服务。
type OpenAIEmbedder struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

// NewOpenAIEmbedder 创建 embedding 客户端。apiKey 为空时返回 nil,
// 调用方应将 nil Embedder 视为能力不可用。
func NewOpenAIEmbedder(apiKey, baseURL, model string) *OpenAIEmbedder {
	if apiKey == "" {
		return nil
	}
	conf := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		conf.BaseURL = baseURL
	}
	m := openai.EmbeddingModel(model)
	if model == "" {
		m = openai.SmallEmbedding3
	}
	return &OpenAIEmbedder{client: openai.NewClientWithConfig(conf), model: m}
}

// Distance 返回 1 - cosine(a, b), 越小越相似。
func (e *OpenAIEmbedder) Distance(ctx context.Context, a, b string) (float64, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{a, b},
		Model: e.model,
	})
	if err != nil {
		return 0, fmt.Errorf("请求 embedding 失败: %w", err)
	}
	if len(resp.Data) < 2 {
		return 0, fmt.Errorf("embedding 响应不完整: 得到 %d 个向量", len(resp.Data))
	}
	return 1 - cosine(resp.Data[0].Embedding, resp.Data[1].Embedding), nil
}

// cosine 计算两个向量的余弦相似度。零向量返回 0。
func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
