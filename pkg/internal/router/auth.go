package router

import (
	"github.com/gin-gonic/gin"

	"github.com/darklord813/gamevault/pkg/internal/handle"
)

// RegisterAuthRoutes 注册登录与主题偏好路由.
func RegisterAuthRoutes(g *gin.RouterGroup) {
	authRoutes := g.Group("/auth")
	{
		authRoutes.POST("/login", handle.Login)
		authRoutes.POST("/logout", handle.Logout)
	}

	themeRoutes := g.Group("/theme")
	{
		themeRoutes.GET("", handle.GetTheme)
		themeRoutes.PUT("", handle.SetTheme)
	}
}
