package handle

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/darklord813/gamevault/pkg/internal/service"
)

// StatsSummary 目录统计总览（管理员）.
func StatsSummary(c *gin.Context) {
	svc := service.NewStatsService(c.Request.Context())
	c.JSON(http.StatusOK, svc.Summary(c.Request.Context()))
}

// StatsPlatforms 按下载链接平台标签的下载统计（管理员）.
func StatsPlatforms(c *gin.Context) {
	svc := service.NewStatsService(c.Request.Context())
	c.JSON(http.StatusOK, svc.Platforms(c.Request.Context()))
}

// StatsRatings 按游戏的评分统计（管理员）.
func StatsRatings(c *gin.Context) {
	svc := service.NewStatsService(c.Request.Context())
	c.JSON(http.StatusOK, svc.Ratings(c.Request.Context()))
}

// StatsTop 排行榜（管理员），by=downloads|views，limit 默认 10.
func StatsTop(c *gin.Context) {
	by := c.DefaultQuery("by", "downloads")
	if by != "downloads" && by != "views" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "by must be downloads or views"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}

	svc := service.NewStatsService(c.Request.Context())
	c.JSON(http.StatusOK, svc.Top(c.Request.Context(), by, limit))
}
