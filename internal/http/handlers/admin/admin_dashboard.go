package admin

import (
	"strings"

	"github.com/bgsport/backoffice/internal/http/response"
	"github.com/bgsport/backoffice/internal/service"

	"github.com/gin-gonic/gin"
)

// GetDashboardOverview 获取后台仪表盘总览
func (h *Handler) GetDashboardOverview(c *gin.Context) {
	data, err := h.DashboardService.GetOverview(c.Request.Context(), service.DashboardQueryInput{
		Range:        strings.TrimSpace(c.DefaultQuery("range", "1month")),
		From:         strings.TrimSpace(c.Query("from")),
		To:           strings.TrimSpace(c.Query("to")),
		ForceRefresh: queryBool(c, "force_refresh"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, data)
}
