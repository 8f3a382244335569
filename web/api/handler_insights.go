package api

import (
	"context"
	"time"

	"github.com/afumu/chatwrapped/internal/insight"
	"github.com/afumu/chatwrapped/internal/model"
	"github.com/afumu/chatwrapped/store/types"
	"github.com/afumu/chatwrapped/web/transport"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// analyzeRequest 分析请求体。
type analyzeRequest struct {
	WindowDays int `json:"windowDays"`
}

// StartInsightRun 启动一次异步分析运行, 立即返回运行ID。
// 进度通过 GetInsightRun 轮询。
func (a *API) StartInsightRun(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		transport.BadRequest(c, "无效的请求体: "+err.Error())
		return
	}
	cfg := insight.Config{WindowDays: req.WindowDays}
	if err := cfg.Validate(); err != nil {
		transport.BadRequest(c, err.Error())
		return
	}

	messages, err := a.loadWindow(c.Request.Context(), cfg.WindowDays)
	if err != nil {
		log.Error().Err(err).Msg("读取消息失败")
		transport.InternalServerError(c, err.Error())
		return
	}

	runID := uuid.NewString()
	runCtx, cancel := context.WithCancel(context.Background())
	a.Runs.Begin(runID, cancel)

	go func() {
		defer cancel()
		result, err := a.Engine.Analyze(runCtx, messages, cfg, func(fraction float64, step string) {
			a.Runs.Update(runID, fraction, step)
		})
		switch {
		case runCtx.Err() != nil:
			log.Info().Str("run", runID).Msg("分析运行已取消")
		case err != nil:
			log.Error().Err(err).Str("run", runID).Msg("分析运行失败")
			a.Runs.Fail(runID, err)
		default:
			a.Runs.Complete(runID, result)
		}
	}()

	transport.SendAccepted(c, gin.H{"runId": runID})
}

// GetInsightRun 查询运行进度; 运行完成后携带完整结果。
func (a *API) GetInsightRun(c *gin.Context) {
	run, ok := a.Runs.Get(c.Param("id"))
	if !ok {
		transport.NotFound(c, "运行不存在")
		return
	}
	transport.SendSuccess(c, run)
}

// CancelInsightRun 取消一个进行中的运行。
func (a *API) CancelInsightRun(c *gin.Context) {
	if !a.Runs.Cancel(c.Param("id")) {
		transport.NotFound(c, "运行不存在")
		return
	}
	transport.SendSuccess(c, gin.H{"cancelled": true})
}

// AnalyzeSync 同步分析, 适合小窗口的即时查询。
func (a *API) AnalyzeSync(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		transport.BadRequest(c, "无效的请求体: "+err.Error())
		return
	}
	cfg := insight.Config{WindowDays: req.WindowDays}
	if err := cfg.Validate(); err != nil {
		transport.BadRequest(c, err.Error())
		return
	}

	messages, err := a.loadWindow(c.Request.Context(), cfg.WindowDays)
	if err != nil {
		log.Error().Err(err).Msg("读取消息失败")
		transport.InternalServerError(c, err.Error())
		return
	}

	result, err := a.Engine.Analyze(c.Request.Context(), messages, cfg, nil)
	if err != nil {
		transport.InternalServerError(c, err.Error())
		return
	}
	transport.SendSuccess(c, result)
}

// GetContacts 返回全部联系人ID。
func (a *API) GetContacts(c *gin.Context) {
	ids, err := a.Store.GetContactIDs(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("读取联系人失败")
		transport.InternalServerError(c, err.Error())
		return
	}
	transport.SendSuccess(c, ids)
}

// loadWindow 读取最近 windowDays 天的全部消息。
func (a *API) loadWindow(ctx context.Context, windowDays int) ([]model.MessageRecord, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -windowDays)
	return a.Store.GetMessages(ctx, types.MessageQuery{StartTime: start, EndTime: end})
}
