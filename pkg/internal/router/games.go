package router

import (
	"github.com/gin-gonic/gin"

	"github.com/darklord813/gamevault/pkg/internal/handle"
)

// RegisterGamesRoutes 注册游戏目录的公开路由.
// 只有列表路由无副作用，可选挂响应缓存；详情路由要记浏览数，不缓存.
func RegisterGamesRoutes(g *gin.RouterGroup, listCache gin.HandlerFunc) {
	gamesRoutes := g.Group("/games")
	{
		// 列表/筛选
		if listCache != nil {
			gamesRoutes.GET("", listCache, handle.ListGames)
		} else {
			gamesRoutes.GET("", handle.ListGames)
		}

		singleGroup := gamesRoutes.Group("/:id")
		{
			// 详情（默认记浏览，?peek=1 只读）
			singleGroup.GET("", handle.GetGame)
			// 下载计数
			singleGroup.POST("/download", handle.RecordDownload)
			// 评分投票与聚合查询
			singleGroup.POST("/votes", handle.Vote)
			singleGroup.GET("/votes", handle.GetAggregate)
		}
	}

	// 首页精选位的独立评分主题
	featuredRoutes := g.Group("/featured")
	{
		featuredRoutes.POST("/votes", handle.FeaturedVote)
		featuredRoutes.GET("/votes", handle.FeaturedAggregate)
	}
}

// RegisterAdminGamesRoutes 注册游戏目录的管理路由.
func RegisterAdminGamesRoutes(g *gin.RouterGroup) {
	gamesRoutes := g.Group("/games")
	{
		gamesRoutes.POST("", handle.CreateGame)
		gamesRoutes.PUT("/:id", handle.UpdateGame)
		gamesRoutes.DELETE("/:id", handle.DeleteGame)
	}
}
