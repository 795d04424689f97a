package router

import (
	"github.com/gin-gonic/gin"

	"github.com/darklord813/gamevault/pkg/internal/handle"
)

// RegisterSharesRoutes 注册分享链接的公开路由.
func RegisterSharesRoutes(g *gin.RouterGroup) {
	// 为指定游戏铸造分享码
	g.POST("/games/:id/share", handle.CreateShareLink)
	// 解析分享码（过期 410、未知或悬空 404）
	g.GET("/share/:code", handle.ResolveShareLink)
}

// RegisterAdminSharesRoutes 注册分享链接的管理路由.
func RegisterAdminSharesRoutes(g *gin.RouterGroup) {
	sharesRoutes := g.Group("/shares")
	{
		// 列表，支持 ?game_id= 过滤
		sharesRoutes.GET("", handle.ListShareLinks)
		sharesRoutes.DELETE("/:code", handle.DeleteShareLink)
	}
}
