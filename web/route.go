package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// setupRoutes 初始化所有应用程序路由。
func (s *Service) setupRoutes() {
	v1 := s.router.Group("/api/v1")
	{
		// 联系人路由
		v1.GET("/contacts", s.api.GetContacts)

		// 分析路由
		insights := v1.Group("/insights")
		{
			insights.POST("/analyze", s.api.AnalyzeSync)
			insights.POST("/runs", s.api.StartInsightRun)
			insights.GET("/runs/:id", s.api.GetInsightRun)
			insights.DELETE("/runs/:id", s.api.CancelInsightRun)
		}
	}

	// 健康检查
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
