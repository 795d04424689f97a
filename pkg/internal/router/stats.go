package router

import (
	"github.com/gin-gonic/gin"

	"github.com/darklord813/gamevault/pkg/internal/handle"
)

// RegisterStatsRoutes 注册统计相关路由.
func RegisterStatsRoutes(g *gin.RouterGroup) {
	statsRoutes := g.Group("/stats")
	{
		statsRoutes.GET("/summary", handle.StatsSummary)     // 全站汇总
		statsRoutes.GET("/platforms", handle.StatsPlatforms) // 平台维度下载统计
		statsRoutes.GET("/ratings", handle.StatsRatings)     // 评分排行
		statsRoutes.GET("/top", handle.StatsTop)             // 下载/浏览排行
	}
}
