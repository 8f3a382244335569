package api

import (
	"github.com/afumu/chatwrapped/internal/insight"
	"github.com/afumu/chatwrapped/internal/progress"
	"github.com/afumu/chatwrapped/store"
)

// API 封装了 API 处理器所需的全部依赖。
type API struct {
	Store  store.Store
	Engine *insight.Engine
	Runs   *progress.Store
}

// NewAPI 创建一个新的 API 处理器。
func NewAPI(s store.Store, engine *insight.Engine) *API {
	return &API{
		Store:  s,
		Engine: engine,
		Runs:   progress.NewStore(),
	}
}
